package rag

import (
	"fmt"

	"github.com/futig/cookbook-backend/internal/entity"
)

// ToDTO shapes a document for the upload response.
func ToDTO(doc *entity.Document) entity.DocumentDTO {
	dto := entity.DocumentDTO{
		ID:        doc.ID,
		SessionID: doc.SessionID,
		Name:      doc.Name,
		Kind:      string(doc.Kind),
		Pages:     doc.PageCount,
		Words:     doc.WordCount,
		Chunks:    doc.ChunkCount,
	}
	if doc.Kind == entity.DocumentKindAudio {
		dto.Duration = formatDuration(doc.DurationSec)
	}
	return dto
}

// interpolateTimestamps maps rune offsets in the transcript to seconds,
// assuming an even speech rate across the recording.
func interpolateTimestamps(startChar, endChar, totalChars int, durationSec float64) (float64, float64) {
	if totalChars == 0 {
		return 0, 0
	}
	start := float64(startChar) / float64(totalChars) * durationSec
	end := float64(endChar) / float64(totalChars) * durationSec
	if end > durationSec {
		end = durationSec
	}
	return start, end
}

// formatTimestamp renders seconds as MM:SS.
func formatTimestamp(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// formatDuration renders a recording length for display, e.g.
// "5m 30s" or "1h 15m".
func formatDuration(sec float64) string {
	total := int(sec)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
