package websearch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go/v4"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/common"
	readability "github.com/go-shiori/go-readability"
	pkghttp "github.com/futig/cookbook-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector scrapes the DuckDuckGo HTML endpoint for search results
// and pulls readable article bodies from result pages.
type Connector struct {
	config    config.SearchConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.SearchConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search runs a text search and returns up to MaxResults hits.
func (c *Connector) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	ctxzap.Info(ctx, "running web search", zap.String("query", query))

	var body []byte
	err := retry.Do(func() error {
		var reqErr error
		body, reqErr = c.connector.DoHTMLRequest(ctx, c.config.SearchEndpoint,
			pkghttp.WithQueryParam("q", query),
			pkghttp.WithHeader("User-Agent", c.config.UserAgent),
		)
		return reqErr
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}

	results, err := ParseResults(body, c.config.MaxResults)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "web search finished", zap.Int("results", len(results)))

	return results, nil
}

// FetchReadable downloads a page and extracts its readable text.
func (c *Connector) FetchReadable(ctx context.Context, pageURL string) (string, error) {
	ctxzap.Debug(ctx, "fetching article body", zap.String("url", pageURL))

	body, err := c.connector.DoHTMLRequest(ctx, "",
		pkghttp.WithURL(pageURL),
		pkghttp.WithHeader("User-Agent", c.config.UserAgent),
	)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return "", fmt.Errorf("extract readable content: %w", err)
	}

	return strings.TrimSpace(article.TextContent), nil
}

// ParseResults extracts search hits from the DuckDuckGo HTML page.
func ParseResults(html []byte, limit int) ([]entity.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var results []entity.SearchResult
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a")
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		results = append(results, entity.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			URL:     resolveRedirect(href),
			Snippet: strings.TrimSpace(sel.Find("a.result__snippet").Text()),
		})
		return len(results) < limit
	})

	return results, nil
}

// resolveRedirect unwraps the uddg redirect parameter DuckDuckGo puts
// around outbound links.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
