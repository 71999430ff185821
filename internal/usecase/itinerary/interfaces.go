package itinerary

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error)
}

type GeoConnector interface {
	Geocode(ctx context.Context, query string) (*entity.GeoPlace, error)
	Reverse(ctx context.Context, lat, lon float64) (*entity.GeoPlace, error)
}
