package rag

import (
	"context"

	"github.com/futig/cookbook-backend/internal/entity"
)

type RAGUsecase interface {
	IndexPDF(ctx context.Context, name string, data []byte) (*entity.Document, error)
	IndexAudio(ctx context.Context, name string, data []byte) (*entity.Document, error)
	Ask(ctx context.Context, documentID, question string) (*entity.RAGAnswer, error)
}
