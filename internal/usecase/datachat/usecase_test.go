package datachat

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
	planReply string
	specReply string
}

func (f *fakeLLM) Complete(_ context.Context, messages []entity.ChatMessage, _ float64) (string, error) {
	prompt := messages[len(messages)-1].Content
	switch {
	case strings.Contains(prompt, "ANALYSIS_PLAN"):
		return f.planReply, nil
	case strings.Contains(prompt, `"operation"`):
		return f.specReply, nil
	default:
		return "The total comes to 750.", nil
	}
}

func newTestUsecase(llm LLMConnector) *Usecase {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	return NewUsecase(store, llm, zap.NewNop())
}

const salesCSV = "region,amount\nNorth,500\nSouth,250\n"

func TestUpload(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	summary, err := uc.Upload(context.Background(), "sales.csv", []byte(salesCSV))
	require.NoError(t, err)

	assert.NotEmpty(t, summary.SessionID)
	assert.Equal(t, 2, summary.Rows)
	require.Len(t, summary.Columns, 2)
	assert.Equal(t, entity.ColumnNumeric, summary.Columns[1].Type)
	assert.Len(t, summary.Preview, 2)
}

func TestUploadUnsupportedFile(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})
	_, err := uc.Upload(context.Background(), "sales.json", []byte("{}"))
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestAskPipeline(t *testing.T) {
	llm := &fakeLLM{
		planReply: "ANALYSIS_PLAN: Sum the amount column.\nCHART_NEEDED: yes",
		specReply: `{"operation": "groupby", "column": "amount", "group_by": "region"}`,
	}
	uc := newTestUsecase(llm)

	summary, err := uc.Upload(context.Background(), "sales.csv", []byte(salesCSV))
	require.NoError(t, err)

	answer, err := uc.Ask(context.Background(), summary.SessionID, "total sales per region?")
	require.NoError(t, err)

	assert.Equal(t, "Sum the amount column.", answer.Plan)
	assert.Equal(t, "groupby", answer.Spec.Operation)
	assert.Equal(t, "The total comes to 750.", answer.Answer)

	require.NotNil(t, answer.Chart, "chart requested by the plan")
	require.Len(t, answer.Chart.Labels, 2)
	assert.Equal(t, "North", answer.Chart.Labels[0], "labels sorted by value descending")
	assert.Equal(t, "bar", answer.Chart.Kind)

	turns, err := uc.History(context.Background(), summary.SessionID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "total sales per region?", turns[0].Question)
}

func TestAskWithoutChart(t *testing.T) {
	llm := &fakeLLM{
		planReply: "ANALYSIS_PLAN: Count the rows.\nCHART_NEEDED: no",
		specReply: `{"operation": "count"}`,
	}
	uc := newTestUsecase(llm)

	summary, err := uc.Upload(context.Background(), "sales.csv", []byte(salesCSV))
	require.NoError(t, err)

	answer, err := uc.Ask(context.Background(), summary.SessionID, "how many rows?")
	require.NoError(t, err)
	assert.Nil(t, answer.Chart)
	assert.InDelta(t, 2, answer.Result.Value, 0.001)
}

func TestAskEmptyQuestion(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	summary, err := uc.Upload(context.Background(), "sales.csv", []byte(salesCSV))
	require.NoError(t, err)

	_, err = uc.Ask(context.Background(), summary.SessionID, "  ")
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestAskUnknownSession(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})
	_, err := uc.Ask(context.Background(), "missing", "anything")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestParsePlanReply(t *testing.T) {
	plan, chart := parsePlanReply("ANALYSIS_PLAN: do the thing\nCHART_NEEDED: Yes")
	assert.Equal(t, "do the thing", plan)
	assert.True(t, chart)

	plan, chart = parsePlanReply("ANALYSIS_PLAN: Count rows.\nCHART_NEEDED: no")
	assert.Equal(t, "Count rows.", plan)
	assert.False(t, chart)

	plan, chart = parsePlanReply("no structure at all")
	assert.Empty(t, plan)
	assert.False(t, chart)
}
