package statements

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers statement analyzer routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/statements", func(r chi.Router) {
		r.Post("/", h.Analyze)

		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", h.GetAnalysis)
			r.Get("/report", h.Report)
		})
	})
}
