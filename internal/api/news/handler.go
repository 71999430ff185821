package news

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/api/download"
	"github.com/futig/cookbook-backend/internal/pkg/formatter"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase NewsUsecase
	formats *formatter.Factory
}

func NewHandler(usecase NewsUsecase, formats *formatter.Factory) *Handler {
	return &Handler{usecase: usecase, formats: formats}
}

type refreshRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// Refresh handles POST /news/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RefreshNews")

	var req refreshRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	digest, err := h.usecase.Refresh(ctx, req.SessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "digest refreshed",
		zap.String("session_id", digest.SessionID),
		zap.Int("articles", len(digest.Articles)),
	)
	response.Success(w, digest)
}

// Digest handles GET /news/{session_id}
func (h *Handler) Digest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetDigest"),
	)

	digest, err := h.usecase.Digest(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, digest)
}

// DigestReport handles GET /news/{session_id}/report
func (h *Handler) DigestReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "DigestReport"),
	)

	report, err := h.usecase.Report(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	download.Serve(ctx, w, h.formats, download.ParseFormat(r),
		"news-digest", "News Digest", report)
}

// DeepDive handles POST /news/{session_id}/dives/{index}
func (h *Handler) DeepDive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "index must be a number", err)
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.Int("article_index", index),
		zap.String("action", "DeepDive"),
	)

	dive, err := h.usecase.DeepDive(ctx, sessionID, index)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, dive)
}

// DiveReport handles GET /news/{session_id}/dives/{index}/report
func (h *Handler) DiveReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "index must be a number", err)
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.Int("article_index", index),
		zap.String("action", "DiveReport"),
	)

	dive, err := h.usecase.DeepDive(ctx, sessionID, index)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	download.Serve(ctx, w, h.formats, download.ParseFormat(r),
		"deep-dive", dive.Article.Title, dive.Report)
}
