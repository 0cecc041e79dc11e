// Package storage persists uploaded profile photos on the local
// filesystem under a single flat directory.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotADirectory  = errors.New("upload path exists and is not a directory")
	ErrUnsafeFilename = errors.New("unsafe filename")
)

// allowed photo extensions, lowercase with leading dot
var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// AllowedFile reports whether the filename carries an accepted image
// extension. The check is extension-only; content is not sniffed.
func AllowedFile(name string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(name))]
}

// StoredName derives the on-disk filename for an upload from the owner's
// normalized email and the original filename. The result contains only
// word characters, dots and dashes, so it is safe to join to the upload
// directory.
func StoredName(email, original string) string {
	return sanitizeFilename(email + "_" + original)
}

// sanitizeFilename replaces every byte outside [A-Za-z0-9._-] with an
// underscore and strips any leading dots.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

// DiskStore stores uploads as plain files in a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures dir exists and returns a store over it. It fails
// when the path exists but is not a directory.
func NewDiskStore(dir string) (*DiskStore, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &DiskStore{dir: dir}, nil
}

// Save writes the reader's contents to name inside the store directory.
func (s *DiskStore) Save(name string, r io.Reader) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Path resolves name to an absolute path inside the store directory,
// rejecting names that could escape it.
func (s *DiskStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrUnsafeFilename
	}
	return filepath.Join(s.dir, name), nil
}
