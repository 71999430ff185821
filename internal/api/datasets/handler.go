package datasets

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/futig/cookbook-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   DatachatUsecase
	cfg       config.FileUploadConfig
	validator *validator.Validator
}

func NewHandler(usecase DatachatUsecase, cfg config.FileUploadConfig, validator *validator.Validator) *Handler {
	return &Handler{usecase: usecase, cfg: cfg, validator: validator}
}

// Upload handles POST /datasets
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDataset")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "file field is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateDatasetUpload(header); err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		apierr.Respond(ctx, w, http.StatusInternalServerError, "failed to read upload", err)
		return
	}

	ctxzap.Info(ctx, "loading dataset",
		zap.String("name", header.Filename),
		zap.Int("size", len(data)),
	)

	summary, err := h.usecase.Upload(ctx, validator.SanitizeFilename(header.Filename), data)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Created(w, summary)
}

// Ask handles POST /datasets/{session_id}/questions
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "AskDataset"),
	)

	var req entity.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	answer, err := h.usecase.Ask(ctx, sessionID, req.Question)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, answer)
}

// History handles GET /datasets/{session_id}/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "DatasetHistory"),
	)

	turns, err := h.usecase.History(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{"turns": turns})
}
