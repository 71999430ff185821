package blogs

import (
	"encoding/json"
	"net/http"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/api/download"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/formatter"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase BloggerUsecase
	formats *formatter.Factory
}

func NewHandler(usecase BloggerUsecase, formats *formatter.Factory) *Handler {
	return &Handler{usecase: usecase, formats: formats}
}

// Start handles POST /blogs
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartBlog")

	var req entity.StartBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "starting writing thread", zap.String("topic", req.Topic))

	thread, err := h.usecase.Start(ctx, req)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Created(w, thread)
}

// Feedback handles POST /blogs/{thread_id}/feedback
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := chi.URLParam(r, "thread_id")

	ctx = logger.AddFields(ctx,
		zap.String("thread_id", threadID),
		zap.String("action", "BlogFeedback"),
	)

	var req entity.BlogFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	thread, err := h.usecase.Feedback(ctx, threadID, req)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, thread)
}

// Get handles GET /blogs/{thread_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := chi.URLParam(r, "thread_id")

	ctx = logger.AddFields(ctx,
		zap.String("thread_id", threadID),
		zap.String("action", "GetBlogThread"),
	)

	thread, err := h.usecase.Get(ctx, threadID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, thread)
}

// Report handles GET /blogs/{thread_id}/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := chi.URLParam(r, "thread_id")

	ctx = logger.AddFields(ctx,
		zap.String("thread_id", threadID),
		zap.String("action", "BlogReport"),
	)

	post, err := h.usecase.FinalPost(ctx, threadID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	thread, err := h.usecase.Get(ctx, threadID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	download.Serve(ctx, w, h.formats, download.ParseFormat(r),
		"blog-post", thread.Topic, post)
}
