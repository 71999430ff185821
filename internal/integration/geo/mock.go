package geo

import (
	"context"
	"hash/fnv"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector derives stable fake coordinates from the query text.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Geocode(ctx context.Context, query string) (*entity.GeoPlace, error) {
	ctxzap.Info(ctx, "[MOCK] geocoding place", zap.String("query", query))

	h := fnv.New32a()
	h.Write([]byte(query))
	seed := h.Sum32()

	return &entity.GeoPlace{
		DisplayName: query,
		Lat:         float64(seed%18000)/100.0 - 90.0,
		Lon:         float64((seed/18000)%36000)/100.0 - 180.0,
	}, nil
}

func (m *MockConnector) Reverse(ctx context.Context, lat, lon float64) (*entity.GeoPlace, error) {
	ctxzap.Info(ctx, "[MOCK] reverse geocoding",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)

	return &entity.GeoPlace{
		DisplayName: "Mock Place, Mock City",
		Lat:         lat,
		Lon:         lon,
	}, nil
}
