package news

import (
	"context"
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

// Connector fetches latest headlines from a newsdata.io style API.
type Connector struct {
	config    config.NewsConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.NewsConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// FetchLatest returns up to limit fresh headlines.
func (c *Connector) FetchLatest(ctx context.Context, limit int) ([]entity.Article, error) {
	ctxzap.Info(ctx, "fetching latest headlines",
		zap.String("country", c.config.Country),
		zap.String("language", c.config.Language),
	)

	var resp entity.NewsDataResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.LatestEndpoint, nil, &resp,
			pkghttp.WithQueryParam("apikey", c.config.Token),
			pkghttp.WithQueryParam("country", c.config.Country),
			pkghttp.WithQueryParam("language", c.config.Language),
		)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	if resp.Status != "success" {
		return nil, fmt.Errorf("news api returned status %q", resp.Status)
	}

	articles := make([]entity.Article, 0, limit)
	for _, raw := range resp.Results {
		if len(articles) == limit {
			break
		}
		articles = append(articles, toArticle(raw))
	}

	ctxzap.Info(ctx, "headlines fetched", zap.Int("count", len(articles)))

	return articles, nil
}

func toArticle(raw entity.NewsDataArticle) entity.Article {
	category := ""
	if len(raw.Category) > 0 {
		category = raw.Category[0]
	}
	return entity.Article{
		Title:       raw.Title,
		Description: raw.Description,
		Source:      raw.SourceID,
		Link:        raw.Link,
		Published:   raw.PubDate,
		Category:    category,
	}
}
