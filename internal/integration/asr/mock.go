package asr

import (
	"context"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockTranscript = "Welcome to the quarterly review call. " +
	"In the first section we cover revenue growth across regions. " +
	"The second section walks through product updates shipped this quarter. " +
	"Finally we discuss the hiring plan and answer questions from the team."

// MockConnector returns a canned transcript without leaving the process.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Transcribe(ctx context.Context, audioData []byte, filename string) (*entity.Transcript, error) {
	ctxzap.Info(ctx, "[MOCK] transcribing audio",
		zap.String("filename", filename),
		zap.Int("size", len(audioData)),
	)

	return &entity.Transcript{
		Text:        mockTranscript,
		DurationSec: 330, // 5m 30s
		WordCount:   len(strings.Fields(mockTranscript)),
	}, nil
}
