package websearch

import (
	"context"
	"fmt"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector serves canned search hits and article bodies.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	ctxzap.Info(ctx, "[MOCK] web search", zap.String("query", query))

	results := make([]entity.SearchResult, 0, 3)
	for i := 1; i <= 3; i++ {
		results = append(results, entity.SearchResult{
			Title:   fmt.Sprintf("Mock result %d for %s", i, query),
			URL:     fmt.Sprintf("https://example.com/articles/%d", i),
			Snippet: "A placeholder snippet used when mocks are enabled.",
		})
	}
	return results, nil
}

func (m *MockConnector) FetchReadable(ctx context.Context, pageURL string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] fetching article body", zap.String("url", pageURL))
	return "Mock article body with enough text to summarize during local development.", nil
}
