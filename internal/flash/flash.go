// Package flash implements one-shot notification messages carried in a
// cookie and consumed on the next page render.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "flash"

// Message is a single flash notification.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Set stores a flash message to be shown on the next rendered page.
func Set(w http.ResponseWriter, category, text string) {
	payload, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending flash message, if any, and clears it.
func Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Message{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Message{}, false
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}
