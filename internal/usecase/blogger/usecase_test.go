package blogger

import (
	"context"
	"strings"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	llmconn "github.com/futig/cookbook-backend/internal/integration/llm"
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

	if strings.Contains(prompt, "LINKEDIN") {
		return `{"LINKEDIN": "Check out my new post!", "tweet": "New post is live"}`, nil
	}
	return "generated text", nil
}

type fakeSearch struct{}

func (fakeSearch) Search(context.Context, string) ([]entity.SearchResult, error) {
	return []entity.SearchResult{
		{Title: "background one", URL: "https://example.com/1", Snippet: "context"},
		{Title: "background two", URL: "https://example.com/2", Snippet: "context"},
	}, nil
}

func newTestUsecase(llm *fakeLLM) *Usecase {
	store := sessions.NewStore(config.SessionConfig{TTL: 0, CleanupInterval: 0}, zap.NewNop())
	return NewUsecase(store, llm, fakeSearch{}, zap.NewNop())
}

func TestStartRunsRequirementsStage(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	thread, err := uc.Start(context.Background(), entity.StartBlogRequest{Topic: "Go generics"})
	require.NoError(t, err)

	assert.NotEmpty(t, thread.ID)
	assert.Equal(t, entity.StageRequirements, thread.Stage)
	assert.Equal(t, "generated text", thread.Requirements)
	assert.NotEmpty(t, thread.Research)
}

func TestStartRequiresTopic(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	_, err := uc.Start(context.Background(), entity.StartBlogRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestApproveAdvancesThroughAllStages(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})
	ctx := context.Background()

	thread, err := uc.Start(ctx, entity.StartBlogRequest{Topic: "Go generics"})
	require.NoError(t, err)

	approve := entity.BlogFeedbackRequest{Action: entity.ActionApprove}
	for _, want := range []entity.BlogStage{
		entity.StageOutline, entity.StageDraft, entity.StageEdit, entity.StageSocial,
	} {
		thread, err = uc.Feedback(ctx, thread.ID, approve)
		require.NoError(t, err)
		assert.Equal(t, want, thread.Stage)
		assert.NotEmpty(t, thread.CurrentOutput())
	}

	thread, err = uc.Feedback(ctx, thread.ID, approve)
	require.NoError(t, err)
	assert.Equal(t, entity.StageDone, thread.Stage)
	require.NotNil(t, thread.Social)
	assert.LessOrEqual(t, len([]rune(thread.Social.Tweet)), 280)

	_, err = uc.Feedback(ctx, thread.ID, approve)
	assert.ErrorIs(t, err, entity.ErrWorkflowCompleted)
}

func TestReviseRerunsCurrentStageWithFeedback(t *testing.T) {
	llm := &fakeLLM{}
	uc := newTestUsecase(llm)
	ctx := context.Background()

	thread, err := uc.Start(ctx, entity.StartBlogRequest{Topic: "Go generics"})
	require.NoError(t, err)

	thread, err = uc.Feedback(ctx, thread.ID, entity.BlogFeedbackRequest{
		Action:   entity.ActionRevise,
		Feedback: "mention performance tradeoffs",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StageRequirements, thread.Stage, "revision stays on the same stage")

	last := llm.prompts[len(llm.prompts)-1]
	assert.Contains(t, last, "mention performance tradeoffs")
}

func TestReviseWithoutFeedbackFails(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})
	ctx := context.Background()

	thread, err := uc.Start(ctx, entity.StartBlogRequest{Topic: "Go generics"})
	require.NoError(t, err)

	_, err = uc.Feedback(ctx, thread.ID, entity.BlogFeedbackRequest{Action: entity.ActionRevise})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestFinalPostOnlyAfterCompletion(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})
	ctx := context.Background()

	thread, err := uc.Start(ctx, entity.StartBlogRequest{Topic: "Go generics"})
	require.NoError(t, err)

	_, err = uc.FinalPost(ctx, thread.ID)
	assert.ErrorIs(t, err, entity.ErrStageNotApproved)

	approve := entity.BlogFeedbackRequest{Action: entity.ActionApprove}
	for i := 0; i < 5; i++ {
		thread, err = uc.Feedback(ctx, thread.ID, approve)
		require.NoError(t, err)
	}

	post, err := uc.FinalPost(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "generated text", post)
}

func TestFeedbackUnknownThread(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	_, err := uc.Feedback(context.Background(), "missing", entity.BlogFeedbackRequest{Action: entity.ActionApprove})
	assert.ErrorIs(t, err, entity.ErrThreadNotFound)
}

func TestFeedbackUnknownAction(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})
	ctx := context.Background()

	thread, err := uc.Start(ctx, entity.StartBlogRequest{Topic: "Go generics"})
	require.NoError(t, err)

	_, err = uc.Feedback(ctx, thread.ID, entity.BlogFeedbackRequest{Action: "reject"})
	assert.ErrorIs(t, err, entity.ErrInvalidAction)
}

func TestSocialStageWithCannedConnector(t *testing.T) {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	uc := NewUsecase(store, llmconn.NewMockConnector(zap.NewNop()), fakeSearch{}, zap.NewNop())

	thread := &entity.BlogThread{Stage: entity.StageSocial, Edited: "Final article body."}
	require.NoError(t, uc.runStage(context.Background(), thread, ""))

	require.NotNil(t, thread.Social)
	assert.NotEmpty(t, thread.Social.LinkedIn)
	assert.NotEmpty(t, thread.Social.Tweet)
	assert.LessOrEqual(t, len([]rune(thread.Social.Tweet)), 280)
}
