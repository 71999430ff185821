package explorer

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type ExplorerUsecase interface {
	Explore(ctx context.Context, req entity.ExploreRequest) (*entity.Exploration, error)
}
