package itineraries

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type ItineraryUsecase interface {
	Draft(ctx context.Context, params entity.TripParams) (*entity.ItineraryDraft, error)
	Finalize(ctx context.Context, sessionID string, req entity.FinalizeRequest) (*entity.Itinerary, error)
	Get(ctx context.Context, sessionID string) (*entity.Itinerary, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*entity.GeoPlace, error)
}
