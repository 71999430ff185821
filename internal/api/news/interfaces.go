package news

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type NewsUsecase interface {
	Refresh(ctx context.Context, sessionID string) (*entity.NewsDigest, error)
	Digest(ctx context.Context, sessionID string) (*entity.NewsDigest, error)
	Report(ctx context.Context, sessionID string) (string, error)
	DeepDive(ctx context.Context, sessionID string, index int) (*entity.DeepDive, error)
}
