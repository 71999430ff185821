package brokerage

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector serves a small fixed portfolio.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) ExchangeToken(ctx context.Context, requestToken string) (*entity.TokenExchangeResponse, error) {
	ctxzap.Info(ctx, "[MOCK] exchanging brokerage request token")
	return &entity.TokenExchangeResponse{
		AccessToken: "mock-access-token",
		UserID:      "MK0001",
		UserName:    "Mock Trader",
	}, nil
}

func (m *MockConnector) Profile(ctx context.Context, accessToken string) (*entity.Profile, error) {
	ctxzap.Info(ctx, "[MOCK] fetching brokerage profile")
	return &entity.Profile{
		UserID:   "MK0001",
		UserName: "Mock Trader",
		Email:    "trader@example.com",
		Broker:   "MOCK",
	}, nil
}

func (m *MockConnector) Holdings(ctx context.Context, accessToken string) ([]entity.Holding, error) {
	ctxzap.Info(ctx, "[MOCK] fetching brokerage holdings", zap.String("token", "redacted"))
	return []entity.Holding{
		{
			Symbol: "INFY", Exchange: "NSE", Quantity: 10,
			AveragePrice: 1400, LastPrice: 1520, PnL: 1200,
			InvestedValue: 14000, CurrentValue: 15200,
		},
		{
			Symbol: "TCS", Exchange: "NSE", Quantity: 5,
			AveragePrice: 3600, LastPrice: 3450, PnL: -750,
			InvestedValue: 18000, CurrentValue: 17250,
		},
		{
			Symbol: "HDFCBANK", Exchange: "NSE", Quantity: 12,
			AveragePrice: 1500, LastPrice: 1610, PnL: 1320,
			InvestedValue: 18000, CurrentValue: 19320,
		},
	}, nil
}
