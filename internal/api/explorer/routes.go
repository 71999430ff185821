package explorer

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers repository explorer routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/explorer", func(r chi.Router) {
		r.Post("/queries", h.Explore)
	})
}
