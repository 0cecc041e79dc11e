package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KosalaEhub/ticket-book/internal/flash"
	"github.com/KosalaEhub/ticket-book/internal/middleware"
	"github.com/KosalaEhub/ticket-book/internal/model"
	"github.com/KosalaEhub/ticket-book/internal/service"
)

const maxUploadBytes = 10 << 20 // 10MB

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	accounts   *service.AccountService
	sessionTTL time.Duration
	render     *Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, sessionTTL time.Duration, rn *Renderer) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessionTTL: sessionTTL, render: rn}
}

// HandleShowRegister handles GET /register requests.
func (h *AuthHandler) HandleShowRegister(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "register.html", map[string]any{"Title": "Register"})
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		flash.Set(w, "error", "Invalid form submission.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	req := model.RegisterRequest{
		FirstName: r.FormValue("fname"),
		LastName:  r.FormValue("lname"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Country:   r.FormValue("country"),
		City:      r.FormValue("city"),
		Password:  r.FormValue("password"),
		Confirm:   r.FormValue("confirm"),
	}

	var photo io.Reader
	var photoName string
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photo = file
		photoName = header.Filename
	}

	err := h.accounts.Register(r.Context(), req, photo, photoName)
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		flash.Set(w, "error", "Email already registered!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, service.ErrPasswordMismatch):
		flash.Set(w, "error", "Passwords do not match!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, service.ErrInvalidUpload):
		flash.Set(w, "error", "Invalid file type! Only png, jpg, jpeg allowed.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		slog.Error("registration failed", "error", err)
		flash.Set(w, "error", "Something went wrong. Please try again.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		flash.Set(w, "success", "Registration successful! Please login.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// HandleShowLogin handles GET /login requests.
func (h *AuthHandler) HandleShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "login.html", map[string]any{"Title": "Login"})
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Set(w, "error", "Invalid form submission.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := h.accounts.Authenticate(r.Context(), r.FormValue("email"), r.FormValue("password"))

	var invalid *service.InvalidCredentialsError
	switch {
	case errors.Is(err, service.ErrAccountLocked):
		flash.Set(w, "error", "Account locked due to too many failed login attempts.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.As(err, &invalid):
		flash.Set(w, "error", fmt.Sprintf("Invalid email or password! %d attempts left.", invalid.Remaining))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case err != nil:
		slog.Error("login failed", "error", err)
		flash.Set(w, "error", "Something went wrong. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		middleware.SetSession(w, token, h.sessionTTL)
		flash.Set(w, "success", "Login successful!")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// HandleLogout handles GET /logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSession(w)
	flash.Set(w, "success", "Logged out successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
