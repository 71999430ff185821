package blogs

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers blogging assistant routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/blogs", func(r chi.Router) {
		r.Post("/", h.Start)

		r.Route("/{thread_id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/feedback", h.Feedback)
			r.Get("/report", h.Report)
		})
	})
}
