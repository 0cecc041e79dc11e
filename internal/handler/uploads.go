package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KosalaEhub/ticket-book/internal/storage"
)

// UploadHandler serves stored profile photos.
type UploadHandler struct {
	store *storage.DiskStore
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store *storage.DiskStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// HandleServe handles GET /uploads/{filename} requests.
func (h *UploadHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	path, err := h.store.Path(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
