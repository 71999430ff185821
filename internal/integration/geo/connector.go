package geo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avast/retry-go/v4"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/common"
	pkghttp "github.com/futig/cookbook-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// nominatimPlace is the wire shape of a Nominatim result. Coordinates
// arrive as strings.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Connector geocodes place names through a Nominatim instance. The
// service requires an identifying User-Agent on every request.
type Connector struct {
	config    config.GeoConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GeoConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Geocode resolves a free-form place query to coordinates.
func (c *Connector) Geocode(ctx context.Context, query string) (*entity.GeoPlace, error) {
	ctxzap.Debug(ctx, "geocoding place", zap.String("query", query))

	var places []nominatimPlace
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.SearchEndpoint, nil, &places,
			pkghttp.WithQueryParam("q", query),
			pkghttp.WithQueryParam("format", "json"),
			pkghttp.WithQueryParam("limit", "1"),
			pkghttp.WithHeader("User-Agent", c.config.UserAgent),
		)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", query)
	}

	return toGeoPlace(places[0])
}

// Reverse resolves coordinates to a display name.
func (c *Connector) Reverse(ctx context.Context, lat, lon float64) (*entity.GeoPlace, error) {
	ctxzap.Debug(ctx, "reverse geocoding",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)

	var place nominatimPlace
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.ReverseEndpoint, nil, &place,
			pkghttp.WithQueryParam("lat", strconv.FormatFloat(lat, 'f', -1, 64)),
			pkghttp.WithQueryParam("lon", strconv.FormatFloat(lon, 'f', -1, 64)),
			pkghttp.WithQueryParam("format", "json"),
			pkghttp.WithHeader("User-Agent", c.config.UserAgent),
		)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	if place.DisplayName == "" {
		return nil, fmt.Errorf("no reverse geocoding result for %f,%f", lat, lon)
	}

	return toGeoPlace(place)
}

func toGeoPlace(raw nominatimPlace) (*entity.GeoPlace, error) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", raw.Lat, err)
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", raw.Lon, err)
	}
	return &entity.GeoPlace{
		DisplayName: raw.DisplayName,
		Lat:         lat,
		Lon:         lon,
	}, nil
}
