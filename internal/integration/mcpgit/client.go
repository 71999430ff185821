package mcpgit

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Session is one live connection to the GitHub MCP server.
type Session interface {
	ListTools(ctx context.Context) ([]entity.MCPTool, error)
	CallTool(ctx context.Context, name string, params map[string]any) ([]string, error)
	Close() error
}

// Connector launches the official GitHub MCP server as a subprocess
// (docker by default) and speaks MCP over its stdio.
type Connector struct {
	config config.MCPConfig
	logger *zap.Logger
}

func NewConnector(cfg config.MCPConfig, logger *zap.Logger) *Connector {
	return &Connector{config: cfg, logger: logger}
}

// Connect starts the server process and initializes an MCP session.
// The caller owns the session and must Close it.
func (c *Connector) Connect(ctx context.Context, githubToken string) (Session, error) {
	if githubToken == "" {
		githubToken = c.config.GithubToken
	}

	ctxzap.Info(ctx, "starting MCP server",
		zap.String("command", c.config.Command),
	)

	cmd := exec.CommandContext(ctx, c.config.Command, c.config.CommandArgs()...)
	cmd.Env = append(os.Environ(), "GITHUB_PERSONAL_ACCESS_TOKEN="+githubToken)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "cookbook-backend",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to MCP server: %w", err)
	}

	ctxzap.Info(ctx, "MCP session established")

	return &mcpSession{session: session}, nil
}

type mcpSession struct {
	session *mcp.ClientSession
}

func (s *mcpSession) ListTools(ctx context.Context) ([]entity.MCPTool, error) {
	result, err := s.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	tools := make([]entity.MCPTool, 0, len(result.Tools))
	for _, tool := range result.Tools {
		tools = append(tools, entity.MCPTool{
			Name:        tool.Name,
			Description: tool.Description,
		})
	}
	return tools, nil
}

// CallTool invokes a tool and returns the text parts of its result.
// A tool-level error surfaces as a Go error with the joined text.
func (s *mcpSession) CallTool(ctx context.Context, name string, params map[string]any) ([]string, error) {
	result, err := s.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: params,
	})
	if err != nil {
		return nil, fmt.Errorf("call tool %s: %w", name, err)
	}

	var texts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			texts = append(texts, text.Text)
		}
	}

	if result.IsError {
		msg := "tool reported an error"
		if len(texts) > 0 {
			msg = texts[0]
		}
		return nil, fmt.Errorf("tool %s failed: %s", name, msg)
	}

	return texts, nil
}

func (s *mcpSession) Close() error {
	return s.session.Close()
}
