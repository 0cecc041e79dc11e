package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/KosalaEhub/ticket-book/internal/crypto"
	"github.com/KosalaEhub/ticket-book/internal/flash"
)

// SessionCookie is the name of the cookie holding the signed session token.
const SessionCookie = "session"

type contextKey string

const emailKey contextKey = "email"

// RequireSession returns middleware that validates the session cookie and
// loads the authenticated email into the request context. Requests with
// no valid session are flashed and redirected to the login page.
func RequireSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				flash.Set(w, "error", "Please login first.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			claims, err := crypto.ValidateSessionToken(cookie.Value, secret)
			if err != nil {
				ClearSession(w)
				flash.Set(w, "error", "Please login first.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext extracts the authenticated email from the request context.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// SetSession writes the session cookie carrying the signed token.
func SetSession(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
