package itineraries

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers itinerary planner routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/itineraries", func(r chi.Router) {
		r.Post("/drafts", h.Draft)
		r.Get("/geocode/reverse", h.ReverseGeocode)

		r.Route("/{session_id}", func(r chi.Router) {
			r.Post("/", h.Finalize)
			r.Get("/", h.Get)
			r.Get("/report", h.Download)
		})
	})
}
