package portfolio

import (
	"context"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBrokerage struct {
	holdings []entity.Holding
}

func (f *fakeBrokerage) ExchangeToken(context.Context, string) (*entity.TokenExchangeResponse, error) {
	return &entity.TokenExchangeResponse{AccessToken: "access-1", UserID: "AB1234", UserName: "Test User"}, nil
}

func (f *fakeBrokerage) Profile(context.Context, string) (*entity.Profile, error) {
	return &entity.Profile{UserID: "AB1234", UserName: "Test User", Broker: "ZERODHA"}, nil
}

func (f *fakeBrokerage) Holdings(context.Context, string) ([]entity.Holding, error) {
	return f.holdings, nil
}

type fakeLLM struct{}

func (fakeLLM) Complete(context.Context, []entity.ChatMessage, float64) (string, error) {
	return "## Portfolio Summary\nlooks fine", nil
}

func testHoldings() []entity.Holding {
	return []entity.Holding{
		{Symbol: "INFY", Quantity: 10, AveragePrice: 1400, LastPrice: 1500, PnL: 1000, InvestedValue: 14000, CurrentValue: 15000},
		{Symbol: "TCS", Quantity: 5, AveragePrice: 3500, LastPrice: 3400, PnL: -500, InvestedValue: 17500, CurrentValue: 17000},
	}
}

func newTestUsecase(brokerage *fakeBrokerage) *Usecase {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	return NewUsecase(store, brokerage, fakeLLM{}, zap.NewNop())
}

func TestBuildPortfolioTotals(t *testing.T) {
	portfolio := BuildPortfolio(entity.Profile{UserName: "Test User"}, testHoldings())

	assert.InDelta(t, 31500.0, portfolio.InvestedValue, 0.001)
	assert.InDelta(t, 32000.0, portfolio.CurrentValue, 0.001)
	assert.InDelta(t, 500.0, portfolio.TotalPnL, 0.001)
}

func TestConnectAndFetchPortfolio(t *testing.T) {
	uc := newTestUsecase(&fakeBrokerage{holdings: testHoldings()})
	ctx := context.Background()

	sessionID, token, err := uc.Connect(ctx, "req-token")
	require.NoError(t, err)
	assert.Equal(t, "access-1", token.AccessToken)

	portfolio, err := uc.Portfolio(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "ZERODHA", portfolio.Profile.Broker)
	assert.Len(t, portfolio.Holdings, 2)
}

func TestConnectRequiresToken(t *testing.T) {
	uc := newTestUsecase(&fakeBrokerage{})

	_, _, err := uc.Connect(context.Background(), "  ")
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestPortfolioEmptyHoldings(t *testing.T) {
	uc := newTestUsecase(&fakeBrokerage{})
	ctx := context.Background()

	sessionID, _, err := uc.Connect(ctx, "req-token")
	require.NoError(t, err)

	_, err = uc.Portfolio(ctx, sessionID)
	assert.ErrorIs(t, err, entity.ErrEmptyHoldings)
}

func TestPortfolioUnknownSession(t *testing.T) {
	uc := newTestUsecase(&fakeBrokerage{})

	_, err := uc.Portfolio(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestAnalyze(t *testing.T) {
	uc := newTestUsecase(&fakeBrokerage{holdings: testHoldings()})
	ctx := context.Background()

	sessionID, _, err := uc.Connect(ctx, "req-token")
	require.NoError(t, err)

	analysis, err := uc.Analyze(ctx, sessionID)
	require.NoError(t, err)
	assert.Contains(t, analysis.Analysis, "Portfolio Summary")
	assert.Len(t, analysis.Portfolio.Holdings, 2)
}
