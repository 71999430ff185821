package itinerary

import (
	"context"
	"strings"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	prompts []string
}

func (f *fakeLLM) Complete(_ context.Context, messages []entity.ChatMessage, _ float64) (string, error) {
	prompt := messages[len(messages)-1].Content
	f.prompts = append(f.prompts, prompt)

	switch {
	case strings.Contains(prompt, "main_destination"):
		return `[{"day": 1, "main_destination": "Old Town", "places": ["Castle", "Square", "Museum"]}]`, nil
	case strings.Contains(prompt, "extract the specific locations"):
		return `[{"name": "Castle", "day": 1}, {"name": "Atlantis", "day": 1}]`, nil
	default:
		return "# Day 1\nVisit the Castle.", nil
	}
}

type fakeGeo struct{}

func (fakeGeo) Geocode(_ context.Context, query string) (*entity.GeoPlace, error) {
	if strings.Contains(query, "Atlantis") {
		return nil, assert.AnError
	}
	return &entity.GeoPlace{DisplayName: query, Lat: 50.1, Lon: 14.4}, nil
}

func (fakeGeo) Reverse(context.Context, float64, float64) (*entity.GeoPlace, error) {
	return &entity.GeoPlace{DisplayName: "Old Town Square"}, nil
}

func newTestUsecase(llm *fakeLLM) *Usecase {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	return NewUsecase(store, llm, fakeGeo{}, zap.NewNop())
}

func TestDraft(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	draft, err := uc.Draft(context.Background(), entity.TripParams{
		Destination: "Prague", Days: 3, Budget: "medium", Interests: "history",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, draft.SessionID)
	require.Len(t, draft.Days, 1)
	assert.Equal(t, "Old Town", draft.Days[0].MainDestination)
	assert.Len(t, draft.Days[0].Places, 3)
}

func TestDraftValidation(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	_, err := uc.Draft(context.Background(), entity.TripParams{Days: 3})
	assert.ErrorIs(t, err, entity.ErrMissingField)

	_, err = uc.Draft(context.Background(), entity.TripParams{Destination: "Prague", Days: 0})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	_, err = uc.Draft(context.Background(), entity.TripParams{Destination: "Prague", Days: 45})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestFinalizeSkipsFailedGeocodes(t *testing.T) {
	llm := &fakeLLM{}
	uc := newTestUsecase(llm)
	ctx := context.Background()

	draft, err := uc.Draft(ctx, entity.TripParams{Destination: "Prague", Days: 1})
	require.NoError(t, err)

	itinerary, err := uc.Finalize(ctx, draft.SessionID, entity.FinalizeRequest{
		ExtraRequirements: "vegetarian restaurants only",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, itinerary.Markdown)
	require.Len(t, itinerary.Locations, 1, "the unresolvable stop is dropped")
	assert.Equal(t, "Castle", itinerary.Locations[0].Name)
	assert.InDelta(t, 50.1, itinerary.Locations[0].Lat, 0.001)

	var planPrompt string
	for _, p := range llm.prompts {
		if strings.Contains(p, "IMPORTANT ADDITIONAL REQUIREMENTS (MUST INCLUDE):") {
			planPrompt = p
		}
	}
	require.NotEmpty(t, planPrompt, "extra requirements must be forced into the plan prompt")
	assert.Contains(t, planPrompt, "vegetarian restaurants only")

	got, err := uc.Get(ctx, draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, itinerary.Markdown, got.Markdown)
}
