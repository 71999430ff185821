package blogger

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error)
}

type SearchConnector interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}
