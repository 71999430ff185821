package datachat

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error)
}
