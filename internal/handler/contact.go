package handler

import (
	"log/slog"
	"net/http"

	"github.com/KosalaEhub/ticket-book/internal/flash"
	"github.com/KosalaEhub/ticket-book/internal/model"
	"github.com/KosalaEhub/ticket-book/internal/service"
)

// ContactHandler handles the contact form.
type ContactHandler struct {
	contacts *service.ContactService
	render   *Renderer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts *service.ContactService, rn *Renderer) *ContactHandler {
	return &ContactHandler{contacts: contacts, render: rn}
}

// HandleShow handles GET /contact requests.
func (h *ContactHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "contact.html", map[string]any{"Title": "Contact"})
}

// HandleSubmit handles POST /contact requests. Submissions are stored
// as-is regardless of authentication state.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Set(w, "error", "Invalid form submission.")
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	msg := model.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}

	if err := h.contacts.Submit(r.Context(), msg); err != nil {
		slog.Error("contact submission failed", "error", err)
		flash.Set(w, "error", "Something went wrong. Please try again.")
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	flash.Set(w, "success", "Message sent successfully! We'll get back to you soon.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
