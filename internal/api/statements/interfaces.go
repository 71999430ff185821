package statements

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type StatementsUsecase interface {
	Analyze(ctx context.Context, name string, data []byte) (string, *entity.StatementAnalysis, error)
	GetAnalysis(ctx context.Context, sessionID string) (*entity.StatementAnalysis, error)
	Report(ctx context.Context, sessionID string) (string, error)
}
