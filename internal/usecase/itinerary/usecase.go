package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/llmtext"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// App is the session namespace of the itinerary planner.
const App = "itinerary"

const (
	draftTemperature = 0.7
	finalTemperature = 0.7
)

// Usecase generates trip itineraries in two steps: a quick structured
// draft for review, then a full plan with geocoded stops.
type Usecase struct {
	store  *sessions.Store
	llm    LLMConnector
	geo    GeoConnector
	logger *zap.Logger
}

type sessionState struct {
	Params    entity.TripParams
	Draft     []entity.DraftDay
	Itinerary *entity.Itinerary
}

func NewUsecase(store *sessions.Store, llm LLMConnector, geo GeoConnector, logger *zap.Logger) *Usecase {
	return &Usecase{store: store, llm: llm, geo: geo, logger: logger}
}

// Draft produces a day-by-day outline the user can review and edit
// before committing to the full itinerary.
func (uc *Usecase) Draft(ctx context.Context, params entity.TripParams) (*entity.ItineraryDraft, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Create a quick %d-day trip outline for %s.
Budget: %s. Interests: %s.

Return a JSON array, one object per day:
[{"day": 1, "main_destination": "area or neighborhood for the day", "places": ["3 to 5 specific places to visit"]}]

JSON only, no prose.`, params.Days, params.Destination, params.Budget, params.Interests)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: prompt},
	}, draftTemperature)
	if err != nil {
		return nil, fmt.Errorf("draft itinerary: %w", err)
	}

	var days []entity.DraftDay
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &days); err != nil {
		return nil, fmt.Errorf("%w: itinerary draft: %v", entity.ErrMalformedLLMReply, err)
	}

	entry := uc.store.Create(App, &sessionState{Params: params, Draft: days})

	ctxzap.Info(ctx, "itinerary drafted",
		zap.String("destination", params.Destination),
		zap.Int("days", len(days)),
	)

	return &entity.ItineraryDraft{
		SessionID: entry.ID,
		Params:    params,
		Days:      days,
	}, nil
}

// Finalize expands an approved draft into the full markdown plan and
// geocodes every extracted stop. Stops that fail to geocode are
// skipped, not fatal.
func (uc *Usecase) Finalize(ctx context.Context, sessionID string, req entity.FinalizeRequest) (*entity.Itinerary, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	state := entry.Payload.(*sessionState)

	params := state.Params
	draft := state.Draft
	if len(req.Draft) > 0 {
		draft = req.Draft
	}

	markdown, err := uc.generatePlan(ctx, params, draft, req.ExtraRequirements)
	if err != nil {
		return nil, err
	}

	locations, err := uc.extractLocations(ctx, markdown)
	if err != nil {
		return nil, err
	}

	geocoded := uc.geocodeAll(ctx, params.Destination, locations)

	itinerary := &entity.Itinerary{
		SessionID: sessionID,
		Params:    params,
		Markdown:  markdown,
		Locations: geocoded,
	}
	state.Itinerary = itinerary
	uc.store.Update(sessionID, state)

	ctxzap.Info(ctx, "itinerary finalized",
		zap.String("destination", params.Destination),
		zap.Int("locations", len(geocoded)),
	)
	return itinerary, nil
}

// Get returns the finalized itinerary of a session.
func (uc *Usecase) Get(ctx context.Context, sessionID string) (*entity.Itinerary, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	state := entry.Payload.(*sessionState)
	if state.Itinerary == nil {
		return nil, entity.ErrDocumentNotFound
	}
	return state.Itinerary, nil
}

// ReverseGeocode resolves coordinates to a place name, for map taps on
// the itinerary view.
func (uc *Usecase) ReverseGeocode(ctx context.Context, lat, lon float64) (*entity.GeoPlace, error) {
	return uc.geo.Reverse(ctx, lat, lon)
}

func (uc *Usecase) generatePlan(ctx context.Context, params entity.TripParams, draft []entity.DraftDay, extra string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `Write a detailed %d-day travel itinerary for %s in markdown.
Budget: %s. Interests: %s.

Follow this approved outline:
`, params.Days, params.Destination, params.Budget, params.Interests)

	for _, day := range draft {
		fmt.Fprintf(&b, "Day %d, %s: %s\n", day.Day, day.MainDestination, strings.Join(day.Places, ", "))
	}

	if strings.TrimSpace(extra) != "" {
		fmt.Fprintf(&b, "\nIMPORTANT ADDITIONAL REQUIREMENTS (MUST INCLUDE):\n%s\n", extra)
	}

	b.WriteString("\nInclude timing, food suggestions and practical tips per day. Use a markdown heading per day.")

	markdown, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, finalTemperature)
	if err != nil {
		return "", fmt.Errorf("generate itinerary: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

func (uc *Usecase) extractLocations(ctx context.Context, markdown string) ([]entity.Location, error) {
	prompt := fmt.Sprintf(`From this itinerary, extract the specific locations to show on a map.

Return a JSON array: [{"name": "place name suitable for geocoding", "day": day number}]
JSON only, no prose.

Itinerary:
%s`, markdown)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("extract locations: %w", err)
	}

	var locations []entity.Location
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &locations); err != nil {
		return nil, fmt.Errorf("%w: location list: %v", entity.ErrMalformedLLMReply, err)
	}
	return locations, nil
}

func (uc *Usecase) geocodeAll(ctx context.Context, destination string, locations []entity.Location) []entity.Location {
	geocoded := make([]entity.Location, 0, len(locations))
	for _, loc := range locations {
		place, err := uc.geo.Geocode(ctx, fmt.Sprintf("%s, %s", loc.Name, destination))
		if err != nil {
			ctxzap.Warn(ctx, "geocoding failed, skipping stop",
				zap.String("name", loc.Name), zap.Error(err))
			continue
		}
		loc.Lat = place.Lat
		loc.Lon = place.Lon
		geocoded = append(geocoded, loc)
	}
	return geocoded
}

func validateParams(params entity.TripParams) error {
	if strings.TrimSpace(params.Destination) == "" {
		return fmt.Errorf("%w: destination", entity.ErrMissingField)
	}
	if params.Days < 1 || params.Days > 30 {
		return fmt.Errorf("%w: days must be between 1 and 30", entity.ErrInvalidParameter)
	}
	return nil
}
