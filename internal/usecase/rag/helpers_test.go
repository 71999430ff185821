package rag

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", formatTimestamp(0))
	assert.Equal(t, "00:45", formatTimestamp(45.7))
	assert.Equal(t, "05:30", formatTimestamp(330))
	assert.Equal(t, "75:00", formatTimestamp(4500))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5m 30s", formatDuration(330))
	assert.Equal(t, "0m 45s", formatDuration(45))
	assert.Equal(t, "1h 15m", formatDuration(4500))
	assert.Equal(t, "2h 0m", formatDuration(7200))
}

func TestInterpolateTimestamps(t *testing.T) {
	start, end := interpolateTimestamps(0, 500, 1000, 600)
	assert.InDelta(t, 0.0, start, 0.001)
	assert.InDelta(t, 300.0, end, 0.001)

	start, end = interpolateTimestamps(800, 1200, 1000, 600)
	assert.InDelta(t, 480.0, start, 0.001)
	assert.InDelta(t, 600.0, end, 0.001, "end clamps to the duration")

	start, end = interpolateTimestamps(0, 0, 0, 600)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestToDTO(t *testing.T) {
	audio := &entity.Document{
		ID:          "doc-1",
		SessionID:   "sess-1",
		Name:        "meeting.mp3",
		Kind:        entity.DocumentKindAudio,
		DurationSec: 330,
		WordCount:   1200,
		ChunkCount:  8,
	}
	dto := ToDTO(audio)
	assert.Equal(t, "audio", dto.Kind)
	assert.Equal(t, "5m 30s", dto.Duration)
	assert.Zero(t, dto.Pages)

	pdf := &entity.Document{
		ID:        "doc-2",
		Name:      "report.pdf",
		Kind:      entity.DocumentKindPDF,
		PageCount: 12,
	}
	dto = ToDTO(pdf)
	assert.Equal(t, 12, dto.Pages)
	assert.Empty(t, dto.Duration)
}
