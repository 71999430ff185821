package explorer

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/mcpgit"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error)
}

type MCPConnector interface {
	Connect(ctx context.Context, githubToken string) (mcpgit.Session, error)
}
