package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/mcpgit"
	"github.com/futig/cookbook-backend/internal/pkg/llmtext"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	toolListLimit      = 10
	explainTemperature = 0.7
	perItemCharLimit   = 500
	perCallItemLimit   = 3
	totalCharLimit     = 2000
)

// Usecase answers natural language questions about a GitHub repository
// by planning MCP tool calls, executing them and explaining the output.
type Usecase struct {
	mcp    MCPConnector
	llm    LLMConnector
	cfg    config.MCPConfig
	logger *zap.Logger
}

func NewUsecase(mcp MCPConnector, llm LLMConnector, cfg config.MCPConfig, logger *zap.Logger) *Usecase {
	return &Usecase{mcp: mcp, llm: llm, cfg: cfg, logger: logger}
}

// Explore runs the full plan/execute/explain loop for one query.
func (uc *Usecase) Explore(ctx context.Context, req entity.ExploreRequest) (*entity.Exploration, error) {
	owner, repo, err := ParseRepoURL(req.RepoURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: query", entity.ErrMissingField)
	}

	session, err := uc.mcp.Connect(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("connect MCP: %w", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	calls, err := uc.plan(ctx, owner, repo, req.Query, tools)
	if err != nil {
		return nil, err
	}
	if len(calls) == 0 {
		return nil, entity.ErrNoToolCalls
	}
	if len(calls) > uc.cfg.MaxToolCalls {
		calls = calls[:uc.cfg.MaxToolCalls]
	}

	results := uc.execute(ctx, session, owner, repo, calls)

	explanation, err := uc.explain(ctx, req.Query, results)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "exploration complete",
		zap.String("repo", owner+"/"+repo),
		zap.Int("tool_calls", len(results)),
	)

	return &entity.Exploration{
		RepoURL:     req.RepoURL,
		Query:       req.Query,
		Tools:       tools,
		Results:     results,
		Explanation: explanation,
	}, nil
}

func (uc *Usecase) plan(ctx context.Context, owner, repo, query string, tools []entity.MCPTool) ([]entity.ToolCall, error) {
	shown := tools
	if len(shown) > toolListLimit {
		shown = shown[:toolListLimit]
	}

	var desc strings.Builder
	for _, tool := range shown {
		fmt.Fprintf(&desc, "- %s: %s\n", tool.Name, tool.Description)
	}

	prompt := fmt.Sprintf(`You explore GitHub repositories with MCP tools.

Available tools:
%s
Repository: owner=%q repo=%q
Question: %s

Return a JSON array of tool calls, at most %d:
[{"tool": "tool name", "params": {"owner": ..., "repo": ..., other params}}]

Always include owner and repo params. For issue or pull request state use uppercase OPEN or CLOSED. JSON only, no prose.`,
		desc.String(), owner, repo, query, uc.cfg.MaxToolCalls)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("plan tool calls: %w", err)
	}

	var calls []entity.ToolCall
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &calls); err != nil {
		return nil, fmt.Errorf("%w: tool plan: %v", entity.ErrMalformedLLMReply, err)
	}
	return calls, nil
}

// execute runs each planned call. Failures are recorded on the result,
// not fatal, so the explanation can still cover partial output.
func (uc *Usecase) execute(ctx context.Context, session mcpgit.Session, owner, repo string, calls []entity.ToolCall) []entity.ToolCallResult {
	results := make([]entity.ToolCallResult, 0, len(calls))
	for _, call := range calls {
		params := normalizeParams(call.Params, owner, repo)

		callCtx, cancel := context.WithTimeout(ctx, uc.cfg.CallTimeout)
		texts, err := session.CallTool(callCtx, call.Tool, params)
		cancel()

		result := entity.ToolCallResult{Tool: call.Tool, Params: params}
		if err != nil {
			ctxzap.Warn(ctx, "tool call failed",
				zap.String("tool", call.Tool), zap.Error(err))
			result.Error = err.Error()
		} else {
			result.Texts = texts
			result.Success = true
		}
		results = append(results, result)
	}
	return results
}

// normalizeParams guarantees owner/repo are present and uppercases any
// state value the model emitted in lowercase.
func normalizeParams(params map[string]any, owner, repo string) map[string]any {
	normalized := make(map[string]any, len(params)+2)
	for k, v := range params {
		normalized[k] = v
	}
	if _, ok := normalized["owner"]; !ok {
		normalized["owner"] = owner
	}
	if _, ok := normalized["repo"]; !ok {
		normalized["repo"] = repo
	}
	if state, ok := normalized["state"].(string); ok {
		normalized["state"] = strings.ToUpper(state)
	}
	return normalized
}

func (uc *Usecase) explain(ctx context.Context, query string, results []entity.ToolCallResult) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain what the tool output below says, answering the user's question.\n\nQuestion: %s\n\n", query)

	total := 0
	for _, result := range results {
		fmt.Fprintf(&b, "Tool %s:\n", result.Tool)
		if result.Error != "" {
			fmt.Fprintf(&b, "failed: %s\n\n", result.Error)
			continue
		}

		items := result.Texts
		if len(items) > perCallItemLimit {
			items = items[:perCallItemLimit]
		}
		for _, item := range items {
			if total >= totalCharLimit {
				break
			}
			item = llmtext.Truncate(item, perItemCharLimit)
			if total+len(item) > totalCharLimit {
				item = llmtext.Truncate(item, totalCharLimit-total)
			}
			total += len(item)
			b.WriteString(item)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, explainTemperature)
	if err != nil {
		return "", fmt.Errorf("explain results: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// ParseRepoURL extracts owner and repo from a GitHub URL or an
// "owner/repo" shorthand.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("%w: repo_url", entity.ErrMissingField)
	}

	path := raw
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "github.com/") {
		u, parseErr := url.Parse(raw)
		if parseErr == nil && u.Path != "" {
			path = u.Path
		}
		path = strings.TrimPrefix(path, "github.com/")
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: cannot parse owner/repo from %q", entity.ErrInvalidFormat, raw)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
