package datasets

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type DatachatUsecase interface {
	Upload(ctx context.Context, name string, data []byte) (*entity.DatasetSummary, error)
	Ask(ctx context.Context, sessionID, question string) (*entity.DatasetAnswer, error)
	History(ctx context.Context, sessionID string) ([]entity.DatasetTurn, error)
}
