package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/common"
	pkghttp "github.com/futig/cookbook-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI-compatible chat completions and
// embeddings API.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete runs a chat completion and returns the first choice.
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("model", c.config.ChatModel),
		zap.Float64("temperature", temperature),
		zap.Int("messages", len(messages)),
	)

	req := &entity.ChatCompletionRequest{
		Model:       c.config.ChatModel,
		Messages:    messages,
		Temperature: temperature,
	}

	var resp entity.ChatCompletionResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx), retry.RetryIf(isRetryable))...)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion", entity.ErrMalformedLLMReply)
	}

	ctxzap.Info(ctx, "chat completion received",
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
	)

	return resp.Choices[0].Message.Content, nil
}

// Embed returns one embedding per input text, in input order.
func (c *Connector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Info(ctx, "requesting embeddings",
		zap.String("model", c.config.EmbeddingModel),
		zap.Int("inputs", len(texts)),
	)

	req := &entity.EmbeddingsRequest{
		Model: c.config.EmbeddingModel,
		Input: texts,
	}

	var resp entity.EmbeddingsResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbeddingsEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx), retry.RetryIf(isRetryable))...)
	if err != nil {
		return nil, fmt.Errorf("embeddings failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", entity.ErrMalformedLLMReply, len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", entity.ErrMalformedLLMReply, item.Index)
		}
		vectors[item.Index] = item.Embedding
	}

	return vectors, nil
}

// isRetryable retries on network failures and throttling/5xx statuses.
func isRetryable(err error) bool {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}
