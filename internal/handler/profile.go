package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/KosalaEhub/ticket-book/internal/flash"
	"github.com/KosalaEhub/ticket-book/internal/middleware"
	"github.com/KosalaEhub/ticket-book/internal/model"
	"github.com/KosalaEhub/ticket-book/internal/repository"
	"github.com/KosalaEhub/ticket-book/internal/service"
)

// ProfileHandler handles the session-guarded account pages. All of its
// routes sit behind the RequireSession middleware.
type ProfileHandler struct {
	accounts *service.AccountService
	render   *Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(accounts *service.AccountService, rn *Renderer) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, render: rn}
}

// sessionUser loads the record behind the session claim. The record may
// be gone: a session outlives a deleted account.
func (h *ProfileHandler) sessionUser(r *http.Request) *model.User {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		return nil
	}
	user, err := h.accounts.Profile(r.Context(), email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.Error("profile lookup failed", "email", email, "error", err)
		}
		return nil
	}
	return user
}

// HandleDashboard handles GET /dashboard requests.
func (h *ProfileHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := h.sessionUser(r)

	welcome := "User"
	if user != nil {
		welcome = user.FirstName
	}

	h.render.render(w, r, "dashboard.html", map[string]any{
		"Title":       "Dashboard",
		"User":        user,
		"WelcomeName": welcome,
	})
}

// HandleShowProfile handles GET /profile requests.
func (h *ProfileHandler) HandleShowProfile(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "profile.html", map[string]any{
		"Title": "Profile",
		"User":  h.sessionUser(r),
	})
}

// HandleShowUpdate handles GET /update requests.
func (h *ProfileHandler) HandleShowUpdate(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "update.html", map[string]any{
		"Title": "Update",
		"User":  h.sessionUser(r),
	})
}

// HandleUpdate handles POST /profile and POST /update requests. Only the
// contact-info fields are replaced; email, password and photo are
// immutable through this path.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		flash.Set(w, "error", "Please login first.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		flash.Set(w, "error", "Invalid form submission.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	err := h.accounts.UpdateProfile(r.Context(), email, model.Profile{
		FirstName: r.FormValue("fname"),
		LastName:  r.FormValue("lname"),
		Phone:     r.FormValue("phone"),
		Country:   r.FormValue("country"),
		City:      r.FormValue("city"),
	})
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.Error("profile update failed", "email", email, "error", err)
		}
		flash.Set(w, "error", "Could not update profile.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	flash.Set(w, "success", "Profile updated successfully!")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleDelete handles GET /delete_profile requests. The record is
// removed and the session cleared, so a repeat call redirects to login.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		flash.Set(w, "error", "Please login first.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.accounts.DeleteProfile(r.Context(), email); err != nil {
		slog.Error("profile delete failed", "email", email, "error", err)
		flash.Set(w, "error", "Could not delete profile.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	middleware.ClearSession(w)
	flash.Set(w, "success", "Profile deleted successfully!")
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}
