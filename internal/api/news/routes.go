package news

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers news aggregator routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/news", func(r chi.Router) {
		r.Post("/refresh", h.Refresh)

		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", h.Digest)
			r.Get("/report", h.DigestReport)
			r.Post("/dives/{index}", h.DeepDive)
			r.Get("/dives/{index}/report", h.DiveReport)
		})
	})
}
