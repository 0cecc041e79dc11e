package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/KosalaEhub/ticket-book/internal/attempts"
	"github.com/KosalaEhub/ticket-book/internal/crypto"
	"github.com/KosalaEhub/ticket-book/internal/model"
	"github.com/KosalaEhub/ticket-book/internal/repository"
	"github.com/KosalaEhub/ticket-book/internal/storage"
)

var (
	ErrDuplicateAccount = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidUpload    = errors.New("invalid file type: only png, jpg, jpeg allowed")
	ErrAccountLocked    = errors.New("account locked due to too many failed login attempts")
	ErrUnauthenticated  = errors.New("login required")
)

// InvalidCredentialsError reports a failed authentication along with the
// number of attempts left before the lockout kicks in.
type InvalidCredentialsError struct {
	Remaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid email or password: %d attempts left", e.Remaining)
}

// UserStore is the slice of the credential store the account service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, email string, p model.Profile) error
	Delete(ctx context.Context, email string) error
}

// UploadStore persists uploaded photo bytes under a given name.
type UploadStore interface {
	Save(name string, r io.Reader) error
}

// AccountService orchestrates registration, authentication and profile
// lifecycle over the credential store, password hasher, attempt tracker
// and upload store.
type AccountService struct {
	users     UserStore
	uploads   UploadStore
	tracker   *attempts.Tracker
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserStore, uploads UploadStore, tracker *attempts.Tracker, secret string, expiry time.Duration) *AccountService {
	return &AccountService{
		users:     users,
		uploads:   uploads,
		tracker:   tracker,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// NormalizeEmail lowercases and trims an email for use as the account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. The photo reader and its original
// filename come from the multipart upload; the stored copy is named
// deterministically from the normalized email and the original name.
func (s *AccountService) Register(ctx context.Context, req model.RegisterRequest, photo io.Reader, photoName string) error {
	email := NormalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrDuplicateAccount
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	if req.Password != req.Confirm {
		return ErrPasswordMismatch
	}

	if photo == nil || !storage.AllowedFile(photoName) {
		return ErrInvalidUpload
	}

	stored := storage.StoredName(email, photoName)
	if err := s.uploads.Save(stored, photo); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Phone:        req.Phone,
		Country:      req.Country,
		City:         req.City,
		PasswordHash: hash,
		Photo:        stored,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		// Concurrent registration with the same email can slip past the
		// earlier lookup; the unique index catches it.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrDuplicateAccount
		}
		return err
	}

	slog.Info("account registered", "email", email)
	return nil
}

// Authenticate verifies the credentials and, on success, returns a signed
// session token whose single claim is the normalized email. A locked
// email fails before the credential store is consulted. The attempt
// counter is keyed by the submitted email whether or not an account
// exists under it.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	if s.tracker.Locked(email) {
		return "", ErrAccountLocked
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	if user == nil || !crypto.VerifyPassword(password, user.PasswordHash) {
		count := s.tracker.Increment(email)
		remaining := s.tracker.Remaining(email)
		slog.Info("authentication failed", "email", email, "failures", count)
		if remaining <= 0 {
			return "", ErrAccountLocked
		}
		return "", &InvalidCredentialsError{Remaining: remaining}
	}

	s.tracker.Reset(email)

	token, err := crypto.NewSessionToken(email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return "", err
	}

	slog.Info("authentication succeeded", "email", email)
	return token, nil
}

// Profile fetches the account record for a session email. The session
// may outlive the record; callers get ErrUserNotFound in that case.
func (s *AccountService) Profile(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, NormalizeEmail(email))
}

// UpdateProfile overwrites the mutable contact-info fields of the
// session owner's record. Email, password and photo stay as they are.
func (s *AccountService) UpdateProfile(ctx context.Context, email string, p model.Profile) error {
	return s.users.UpdateProfile(ctx, NormalizeEmail(email), p)
}

// DeleteProfile removes the session owner's record. Deleting an already
// deleted record is a no-op, so the operation is idempotent in effect.
func (s *AccountService) DeleteProfile(ctx context.Context, email string) error {
	err := s.users.Delete(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	return err
}
