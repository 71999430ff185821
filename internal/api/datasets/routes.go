package datasets

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers data analysis chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/datasets", func(r chi.Router) {
		r.Post("/", h.Upload)

		r.Route("/{session_id}", func(r chi.Router) {
			r.Post("/questions", h.Ask)
			r.Get("/history", h.History)
		})
	})
}
