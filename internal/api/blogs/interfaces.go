package blogs

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type BloggerUsecase interface {
	Start(ctx context.Context, req entity.StartBlogRequest) (*entity.BlogThread, error)
	Feedback(ctx context.Context, threadID string, req entity.BlogFeedbackRequest) (*entity.BlogThread, error)
	Get(ctx context.Context, threadID string) (*entity.BlogThread, error)
	FinalPost(ctx context.Context, threadID string) (string, error)
}
