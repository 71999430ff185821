package portfolio

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error)
}

type BrokerageConnector interface {
	ExchangeToken(ctx context.Context, requestToken string) (*entity.TokenExchangeResponse, error)
	Profile(ctx context.Context, accessToken string) (*entity.Profile, error)
	Holdings(ctx context.Context, accessToken string) ([]entity.Holding, error)
}
