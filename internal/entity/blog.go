package entity

import "time"

// BlogStage is one step of the writing workflow.
type BlogStage string

const (
	StageRequirements BlogStage = "requirements"
	StageOutline      BlogStage = "outline"
	StageDraft        BlogStage = "draft"
	StageEdit         BlogStage = "edit"
	StageSocial       BlogStage = "social"
	StageDone         BlogStage = "done"
)

// NextBlogStage returns the stage that follows s.
func NextBlogStage(s BlogStage) BlogStage {
	switch s {
	case StageRequirements:
		return StageOutline
	case StageOutline:
		return StageDraft
	case StageDraft:
		return StageEdit
	case StageEdit:
		return StageSocial
	default:
		return StageDone
	}
}

// FeedbackAction is the reviewer decision on the current stage.
type FeedbackAction string

const (
	ActionApprove FeedbackAction = "approve"
	ActionRevise  FeedbackAction = "revise"
)

// StartBlogRequest opens a new writing thread.
type StartBlogRequest struct {
	Topic    string `json:"topic"`
	Audience string `json:"audience,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

// BlogFeedbackRequest advances or reruns the current stage.
type BlogFeedbackRequest struct {
	Action   FeedbackAction `json:"action"`
	Feedback string         `json:"feedback,omitempty"`
}

// SocialPosts are the final promotional snippets.
type SocialPosts struct {
	LinkedIn string `json:"linkedin"`
	Tweet    string `json:"tweet"` // 280 chars max
}

// BlogThread is the full workflow state. Every stage output stays on the
// thread so a revision can rebuild its prompt from earlier approvals.
type BlogThread struct {
	ID           string       `json:"id"`
	Topic        string       `json:"topic"`
	Audience     string       `json:"audience,omitempty"`
	Tone         string       `json:"tone,omitempty"`
	Stage        BlogStage    `json:"stage"`
	Requirements string       `json:"requirements,omitempty"`
	Research     []SearchResult `json:"research,omitempty"`
	Outline      string       `json:"outline,omitempty"`
	Draft        string       `json:"draft,omitempty"`
	Edited       string       `json:"edited,omitempty"`
	Social       *SocialPosts `json:"social,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CurrentOutput returns the text produced by the thread's current stage.
func (t *BlogThread) CurrentOutput() string {
	switch t.Stage {
	case StageRequirements:
		return t.Requirements
	case StageOutline:
		return t.Outline
	case StageDraft:
		return t.Draft
	case StageEdit:
		return t.Edited
	case StageSocial, StageDone:
		if t.Social != nil {
			return "LinkedIn:\n" + t.Social.LinkedIn + "\n\nTweet:\n" + t.Social.Tweet
		}
	}
	return ""
}
