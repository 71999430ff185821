package statements

import (
	"io"
	"net/http"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/api/download"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/formatter"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/futig/cookbook-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   StatementsUsecase
	cfg       config.FileUploadConfig
	validator *validator.Validator
	formats   *formatter.Factory
}

func NewHandler(usecase StatementsUsecase, cfg config.FileUploadConfig, validator *validator.Validator, formats *formatter.Factory) *Handler {
	return &Handler{usecase: usecase, cfg: cfg, validator: validator, formats: formats}
}

type analyzeResponse struct {
	SessionID string                    `json:"session_id"`
	Analysis  *entity.StatementAnalysis `json:"analysis"`
}

// Analyze handles POST /statements
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AnalyzeStatement")

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

	if err := h.validator.ValidatePDFUpload(header); err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		apierr.Respond(ctx, w, http.StatusInternalServerError, "failed to read upload", err)
		return
	}

	ctxzap.Info(ctx, "analyzing statement",
		zap.String("name", header.Filename),
		zap.Int("size", len(data)),
	)

	sessionID, analysis, err := h.usecase.Analyze(ctx, validator.SanitizeFilename(header.Filename), data)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Created(w, analyzeResponse{SessionID: sessionID, Analysis: analysis})
}

// GetAnalysis handles GET /statements/{session_id}
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetStatementAnalysis"),
	)

	analysis, err := h.usecase.GetAnalysis(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, analyzeResponse{SessionID: sessionID, Analysis: analysis})
}

// Report handles GET /statements/{session_id}/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "StatementReport"),
	)

	report, err := h.usecase.Report(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	download.Serve(ctx, w, h.formats, download.ParseFormat(r),
		"statement-analysis", "Statement Analysis", report)
}
