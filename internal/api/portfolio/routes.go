package portfolio

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers portfolio analyzer routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Post("/tokens", h.Connect)

		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/holdings", h.Holdings)
			r.Post("/analyses", h.Analyze)
			r.Get("/report", h.Report)
		})
	})
}
