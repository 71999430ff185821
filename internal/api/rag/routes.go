package rag

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers retrieval chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/rag", func(r chi.Router) {
		r.Post("/documents", h.UploadDocument)
		r.Post("/audio", h.UploadAudio)
		r.Post("/documents/{document_id}/questions", h.Ask)
		r.Post("/audio/{document_id}/questions", h.Ask)
	})
}
