package explorer

import (
	"encoding/json"
	"net/http"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ExplorerUsecase
}

func NewHandler(usecase ExplorerUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Explore handles POST /explorer/queries
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExploreRepository")

	var req entity.ExploreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "exploring repository",
		zap.String("repo_url", req.RepoURL),
	)

	exploration, err := h.usecase.Explore(ctx, req)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, exploration)
}
