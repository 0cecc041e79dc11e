package handler

import "net/http"

// PageHandler serves the static informational pages.
type PageHandler struct {
	render *Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(rn *Renderer) *PageHandler {
	return &PageHandler{render: rn}
}

// HandleHome handles GET / requests.
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "home.html", map[string]any{"Title": "Home"})
}

// HandleAbout handles GET /about requests.
func (h *PageHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "about.html", map[string]any{"Title": "About"})
}

// HandleBooking handles GET /booking requests.
func (h *PageHandler) HandleBooking(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "booking.html", map[string]any{"Title": "Booking"})
}

// HandleDestinations handles GET /destinations requests.
func (h *PageHandler) HandleDestinations(w http.ResponseWriter, r *http.Request) {
	h.render.render(w, r, "destinations.html", map[string]any{"Title": "Destinations"})
}
