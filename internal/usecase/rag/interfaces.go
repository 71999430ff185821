package rag

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type ASRConnector interface {
	Transcribe(ctx context.Context, audioData []byte, filename string) (*entity.Transcript, error)
}
