package entity

// Wire types for the transcription service.

type ASRUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type ASRTranscriptRequest struct {
	AudioURL string `json:"audio_url"`
}

const (
	TranscriptStatusQueued     = "queued"
	TranscriptStatusProcessing = "processing"
	TranscriptStatusCompleted  = "completed"
	TranscriptStatusError      = "error"
)

type ASRTranscriptResponse struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	Text          string  `json:"text"`
	AudioDuration float64 `json:"audio_duration"` // seconds
	Error         string  `json:"error"`
}

// Transcript is the finished transcription handed to the indexing flow.
type Transcript struct {
	Text        string
	DurationSec float64
	WordCount   int
}
