package news

import (
	"context"
	"fmt"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector serves canned headlines.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) FetchLatest(ctx context.Context, limit int) ([]entity.Article, error) {
	ctxzap.Info(ctx, "[MOCK] fetching latest headlines", zap.Int("limit", limit))

	articles := make([]entity.Article, 0, limit)
	for i := 0; i < limit; i++ {
		articles = append(articles, entity.Article{
			Title:       fmt.Sprintf("Mock headline %d", i+1),
			Description: "A placeholder description for local development.",
			Source:      "mockwire",
			Link:        fmt.Sprintf("https://example.com/news/%d", i+1),
			Published:   "2025-03-01 09:00:00",
			Category:    "top",
		})
	}
	return articles, nil
}
