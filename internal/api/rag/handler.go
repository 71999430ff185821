package rag

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/futig/cookbook-backend/internal/pkg/validator"
	ragusecase "github.com/futig/cookbook-backend/internal/usecase/rag"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   RAGUsecase
	cfg       config.FileUploadConfig
	validator *validator.Validator
}

func NewHandler(usecase RAGUsecase, cfg config.FileUploadConfig, validator *validator.Validator) *Handler {
	return &Handler{usecase: usecase, cfg: cfg, validator: validator}
}

// UploadDocument handles POST /rag/documents
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")

	name, data, ok := h.readUpload(w, r, h.validator.ValidatePDFUpload)
	if !ok {
		return
	}

	ctxzap.Info(ctx, "indexing pdf", zap.String("name", name), zap.Int("size", len(data)))

	doc, err := h.usecase.IndexPDF(ctx, name, data)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Created(w, ragusecase.ToDTO(doc))
}

// UploadAudio handles POST /rag/audio
func (h *Handler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadAudio")

	name, data, ok := h.readUpload(w, r, h.validator.ValidateAudioUpload)
	if !ok {
		return
	}

	ctxzap.Info(ctx, "indexing audio", zap.String("name", name), zap.Int("size", len(data)))

	doc, err := h.usecase.IndexAudio(ctx, name, data)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Created(w, ragusecase.ToDTO(doc))
}

// Ask handles POST /rag/documents/{document_id}/questions
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "document_id")

	ctx = logger.AddFields(ctx,
		zap.String("document_id", documentID),
		zap.String("action", "Ask"),
	)

	var req entity.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	answer, err := h.usecase.Ask(ctx, documentID, req.Question)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, answer)
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, validate func(*multipart.FileHeader) error) (string, []byte, bool) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "file field is required", err)
		return "", nil, false
	}
	defer file.Close()

	if err := validate(header); err != nil {
		apierr.FromUsecase(ctx, w, err)
		return "", nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		apierr.Respond(ctx, w, http.StatusInternalServerError, "failed to read upload", err)
		return "", nil, false
	}

	return validator.SanitizeFilename(header.Filename), data, true
}
