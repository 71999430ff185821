package brokerage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/common"
	pkghttp "github.com/futig/cookbook-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// envelope is the brokerage API response wrapper.
type envelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	ErrorType string          `json:"error_type"`
	Message   string          `json:"message"`
}

type sessionData struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
}

type holdingData struct {
	TradingSymbol string  `json:"tradingsymbol"`
	Exchange      string  `json:"exchange"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	PnL           float64 `json:"pnl"`
}

// Connector talks to a Kite Connect style brokerage API.
type Connector struct {
	config    config.BrokerageConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.BrokerageConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// ExchangeToken trades a login request token for an access token.
// The checksum is sha256(api_key + request_token + api_secret).
func (c *Connector) ExchangeToken(ctx context.Context, requestToken string) (*entity.TokenExchangeResponse, error) {
	ctxzap.Info(ctx, "exchanging brokerage request token")

	sum := sha256.Sum256([]byte(c.config.APIKey + requestToken + c.config.APISecret))
	form := url.Values{}
	form.Set("api_key", c.config.APIKey)
	form.Set("request_token", requestToken)
	form.Set("checksum", hex.EncodeToString(sum[:]))

	var env envelope
	err := c.connector.DoFormRequest(ctx, http.MethodPost, c.config.SessionEndpoint, form, &env,
		pkghttp.WithHeader("X-Kite-Version", "3"),
	)
	if err != nil {
		return nil, fmt.Errorf("exchange token: %w", mapAuthError(err))
	}

	var data sessionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode session data: %w", err)
	}

	ctxzap.Info(ctx, "brokerage token exchanged", zap.String("user_id", data.UserID))

	return &entity.TokenExchangeResponse{
		AccessToken: data.AccessToken,
		UserID:      data.UserID,
		UserName:    data.UserName,
	}, nil
}

// Profile fetches the brokerage user profile.
func (c *Connector) Profile(ctx context.Context, accessToken string) (*entity.Profile, error) {
	ctxzap.Info(ctx, "fetching brokerage profile")

	var env envelope
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.ProfileEndpoint, nil, &env,
			c.authHeaders(accessToken)...)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx), retry.RetryIf(isTransient))...)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", mapAuthError(err))
	}

	var profile entity.Profile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	return &profile, nil
}

// Holdings fetches portfolio holdings with derived values per position.
func (c *Connector) Holdings(ctx context.Context, accessToken string) ([]entity.Holding, error) {
	ctxzap.Info(ctx, "fetching brokerage holdings")

	var env envelope
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.HoldingsEndpoint, nil, &env,
			c.authHeaders(accessToken)...)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx), retry.RetryIf(isTransient))...)
	if err != nil {
		return nil, fmt.Errorf("fetch holdings: %w", mapAuthError(err))
	}

	var raw []holdingData
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return nil, fmt.Errorf("decode holdings: %w", err)
	}

	holdings := make([]entity.Holding, 0, len(raw))
	for _, h := range raw {
		holdings = append(holdings, entity.Holding{
			Symbol:        h.TradingSymbol,
			Exchange:      h.Exchange,
			Quantity:      h.Quantity,
			AveragePrice:  h.AveragePrice,
			LastPrice:     h.LastPrice,
			PnL:           h.PnL,
			InvestedValue: h.Quantity * h.AveragePrice,
			CurrentValue:  h.Quantity * h.LastPrice,
		})
	}

	ctxzap.Info(ctx, "holdings fetched", zap.Int("count", len(holdings)))

	return holdings, nil
}

func (c *Connector) authHeaders(accessToken string) []pkghttp.RequestOpt {
	return []pkghttp.RequestOpt{
		pkghttp.WithHeader("X-Kite-Version", "3"),
		pkghttp.WithHeader("Authorization", fmt.Sprintf("token %s:%s", c.config.APIKey, accessToken)),
	}
}

// mapAuthError converts 401/403 responses into the token expiry
// sentinel so handlers can answer with the right status.
func mapAuthError(err error) error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %s", entity.ErrTokenExpired, httpErr.Message)
		}
	}
	return err
}

func isTransient(err error) bool {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}
