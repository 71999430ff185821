package portfolio

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type PortfolioUsecase interface {
	Connect(ctx context.Context, requestToken string) (string, *entity.TokenExchangeResponse, error)
	Portfolio(ctx context.Context, sessionID string) (*entity.Portfolio, error)
	Analyze(ctx context.Context, sessionID string) (*entity.PortfolioAnalysis, error)
}
