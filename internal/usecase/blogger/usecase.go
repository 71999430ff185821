package blogger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/llmtext"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// App is the session namespace of the blogging assistant.
const App = "blogger"

const (
	researchLimit    = 3
	writeTemperature = 0.7
	tweetLimit       = 280
)

// Usecase runs the staged writing workflow. Every stage output waits
// for an explicit approval before the next stage runs; a revision
// reruns the current stage with the reviewer's feedback folded in.
type Usecase struct {
	store  *sessions.Store
	llm    LLMConnector
	search SearchConnector
	logger *zap.Logger
}

func NewUsecase(store *sessions.Store, llm LLMConnector, search SearchConnector, logger *zap.Logger) *Usecase {
	return &Usecase{store: store, llm: llm, search: search, logger: logger}
}

// Start opens a thread and runs the requirements stage.
func (uc *Usecase) Start(ctx context.Context, req entity.StartBlogRequest) (*entity.BlogThread, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("%w: topic", entity.ErrMissingField)
	}

	now := time.Now().UTC()
	thread := &entity.BlogThread{
		Topic:     req.Topic,
		Audience:  req.Audience,
		Tone:      req.Tone,
		Stage:     entity.StageRequirements,
		CreatedAt: now,
		UpdatedAt: now,
	}

	entry := uc.store.Create(App, thread)
	thread.ID = entry.ID

	if err := uc.runStage(ctx, thread, ""); err != nil {
		uc.store.Delete(entry.ID)
		return nil, err
	}
	uc.store.Update(thread.ID, thread)

	ctxzap.Info(ctx, "writing thread started",
		zap.String("thread_id", thread.ID),
		zap.String("topic", req.Topic),
	)
	return thread, nil
}

// Feedback applies the reviewer decision to the thread's current stage.
func (uc *Usecase) Feedback(ctx context.Context, threadID string, req entity.BlogFeedbackRequest) (*entity.BlogThread, error) {
	entry, err := uc.store.Get(threadID, App)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return nil, entity.ErrThreadNotFound
		}
		return nil, err
	}
	thread := entry.Payload.(*entity.BlogThread)

	if thread.Stage == entity.StageDone {
		return nil, entity.ErrWorkflowCompleted
	}

	switch req.Action {
	case entity.ActionApprove:
		thread.Stage = entity.NextBlogStage(thread.Stage)
		if thread.Stage != entity.StageDone {
			if err := uc.runStage(ctx, thread, ""); err != nil {
				return nil, err
			}
		}
	case entity.ActionRevise:
		if strings.TrimSpace(req.Feedback) == "" {
			return nil, fmt.Errorf("%w: feedback is required to revise", entity.ErrMissingField)
		}
		if err := uc.runStage(ctx, thread, req.Feedback); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidAction, req.Action)
	}

	thread.UpdatedAt = time.Now().UTC()
	uc.store.Update(threadID, thread)

	ctxzap.Info(ctx, "stage feedback applied",
		zap.String("thread_id", threadID),
		zap.String("action", string(req.Action)),
		zap.String("stage", string(thread.Stage)),
	)
	return thread, nil
}

// Get returns the thread state.
func (uc *Usecase) Get(ctx context.Context, threadID string) (*entity.BlogThread, error) {
	entry, err := uc.store.Get(threadID, App)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return nil, entity.ErrThreadNotFound
		}
		return nil, err
	}
	return entry.Payload.(*entity.BlogThread), nil
}

// FinalPost returns the edited article once the workflow completed.
func (uc *Usecase) FinalPost(ctx context.Context, threadID string) (string, error) {
	thread, err := uc.Get(ctx, threadID)
	if err != nil {
		return "", err
	}
	if thread.Stage != entity.StageDone {
		return "", entity.ErrStageNotApproved
	}
	return thread.Edited, nil
}

func (uc *Usecase) runStage(ctx context.Context, thread *entity.BlogThread, feedback string) error {
	switch thread.Stage {
	case entity.StageRequirements:
		return uc.runRequirements(ctx, thread, feedback)
	case entity.StageOutline:
		return uc.runOutline(ctx, thread, feedback)
	case entity.StageDraft:
		return uc.runDraft(ctx, thread, feedback)
	case entity.StageEdit:
		return uc.runEdit(ctx, thread, feedback)
	case entity.StageSocial:
		return uc.runSocial(ctx, thread, feedback)
	default:
		return entity.ErrWorkflowCompleted
	}
}

func (uc *Usecase) runRequirements(ctx context.Context, thread *entity.BlogThread, feedback string) error {
	if len(thread.Research) == 0 {
		results, err := uc.search.Search(ctx, thread.Topic)
		if err != nil {
			ctxzap.Warn(ctx, "research search failed, continuing without", zap.Error(err))
		} else {
			if len(results) > researchLimit {
				results = results[:researchLimit]
			}
			thread.Research = results
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Define the requirements for a blog post on %q.\n", thread.Topic)
	if thread.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s.\n", thread.Audience)
	}
	if thread.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s.\n", thread.Tone)
	}
	if len(thread.Research) > 0 {
		b.WriteString("\nBackground from the web:\n")
		for _, r := range thread.Research {
			fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Snippet)
		}
	}
	b.WriteString("\nList the goal, target reader, key points to cover and desired length.")
	appendFeedback(&b, thread.Requirements, feedback)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, writeTemperature)
	if err != nil {
		return fmt.Errorf("requirements stage: %w", err)
	}
	thread.Requirements = strings.TrimSpace(reply)
	return nil
}

func (uc *Usecase) runOutline(ctx context.Context, thread *entity.BlogThread, feedback string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a structured outline for a blog post on %q.\n\nApproved requirements:\n%s\n",
		thread.Topic, thread.Requirements)
	b.WriteString("\nUse markdown headings with bullet points per section.")
	appendFeedback(&b, thread.Outline, feedback)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, writeTemperature)
	if err != nil {
		return fmt.Errorf("outline stage: %w", err)
	}
	thread.Outline = strings.TrimSpace(reply)
	return nil
}

func (uc *Usecase) runDraft(ctx context.Context, thread *entity.BlogThread, feedback string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the full blog post on %q in markdown.\n\nApproved outline:\n%s\n",
		thread.Topic, thread.Outline)
	appendFeedback(&b, thread.Draft, feedback)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, writeTemperature)
	if err != nil {
		return fmt.Errorf("draft stage: %w", err)
	}
	thread.Draft = strings.TrimSpace(reply)
	return nil
}

func (uc *Usecase) runEdit(ctx context.Context, thread *entity.BlogThread, feedback string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Edit this blog post for clarity, flow and grammar. Keep the structure. Return the full edited post.\n\n%s\n",
		thread.Draft)
	appendFeedback(&b, thread.Edited, feedback)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, 0.3)
	if err != nil {
		return fmt.Errorf("edit stage: %w", err)
	}
	thread.Edited = strings.TrimSpace(reply)
	return nil
}

func (uc *Usecase) runSocial(ctx context.Context, thread *entity.BlogThread, feedback string) error {
	var b strings.Builder
	fmt.Fprintf(&b, `Write promotional posts for this article.

Return a JSON object: {"LINKEDIN": "a LinkedIn post", "tweet": "a tweet of at most 280 characters"}
JSON only, no prose.

Article:
%s
`, thread.Edited)
	if thread.Social != nil {
		appendFeedback(&b, thread.Social.LinkedIn, feedback)
	} else {
		appendFeedback(&b, "", feedback)
	}

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, writeTemperature)
	if err != nil {
		return fmt.Errorf("social stage: %w", err)
	}

	var posts struct {
		LinkedIn string `json:"LINKEDIN"`
		Tweet    string `json:"tweet"`
	}
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &posts); err != nil {
		return fmt.Errorf("%w: social posts: %v", entity.ErrMalformedLLMReply, err)
	}

	if runes := []rune(posts.Tweet); len(runes) > tweetLimit {
		posts.Tweet = string(runes[:tweetLimit-3]) + "..."
	}
	thread.Social = &entity.SocialPosts{LinkedIn: posts.LinkedIn, Tweet: posts.Tweet}
	return nil
}

func appendFeedback(b *strings.Builder, previous, feedback string) {
	if strings.TrimSpace(feedback) == "" {
		return
	}
	if previous != "" {
		fmt.Fprintf(b, "\nYour previous attempt:\n%s\n", previous)
	}
	fmt.Fprintf(b, "\nThe reviewer asked for changes. Revise accordingly:\n%s\n", feedback)
}
