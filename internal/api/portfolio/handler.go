package portfolio

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
	usecase PortfolioUsecase
	formats *formatter.Factory
}

func NewHandler(usecase PortfolioUsecase, formats *formatter.Factory) *Handler {
	return &Handler{usecase: usecase, formats: formats}
}

type connectResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
}

// Connect handles POST /portfolio/tokens
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConnectBrokerage")

	var req entity.TokenExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	sessionID, token, err := h.usecase.Connect(ctx, req.RequestToken)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "brokerage connected", zap.String("user_id", token.UserID))

	response.Created(w, connectResponse{
		SessionID: sessionID,
		UserID:    token.UserID,
		UserName:  token.UserName,
	})
}

// Holdings handles GET /portfolio/{session_id}/holdings
func (h *Handler) Holdings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetHoldings"),
	)

	portfolio, err := h.usecase.Portfolio(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, portfolio)
}

// Analyze handles POST /portfolio/{session_id}/analyses
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "AnalyzePortfolio"),
	)

	analysis, err := h.usecase.Analyze(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, analysis)
}

// Report handles GET /portfolio/{session_id}/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "PortfolioReport"),
	)

	analysis, err := h.usecase.Analyze(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	download.Serve(ctx, w, h.formats, download.ParseFormat(r),
		"portfolio-analysis", "Portfolio Analysis", analysis.Analysis)
}
