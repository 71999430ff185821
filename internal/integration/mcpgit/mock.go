package mcpgit

import (
	"context"
	"fmt"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector avoids spawning docker during local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Connect(ctx context.Context, githubToken string) (Session, error) {
	ctxzap.Info(ctx, "[MOCK] starting MCP session")
	return &mockSession{}, nil
}

type mockSession struct{}

func (s *mockSession) ListTools(ctx context.Context) ([]entity.MCPTool, error) {
	return []entity.MCPTool{
		{Name: "search_repositories", Description: "Search for GitHub repositories"},
		{Name: "list_issues", Description: "List issues in a repository"},
		{Name: "list_pull_requests", Description: "List pull requests in a repository"},
		{Name: "list_commits", Description: "Get list of commits of a branch"},
		{Name: "get_file_contents", Description: "Get contents of a file or directory"},
	}, nil
}

func (s *mockSession) CallTool(ctx context.Context, name string, params map[string]any) ([]string, error) {
	ctxzap.Info(ctx, "[MOCK] calling MCP tool", zap.String("tool", name))
	return []string{fmt.Sprintf(`{"tool":%q,"result":"mock payload"}`, name)}, nil
}

func (s *mockSession) Close() error { return nil }
