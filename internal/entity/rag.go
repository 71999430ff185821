package entity

import "time"

// DocumentKind distinguishes indexed sources.
type DocumentKind string

const (
	DocumentKindPDF   DocumentKind = "pdf"
	DocumentKindAudio DocumentKind = "audio"
)

// Document is an indexed upload scoped to a session. Rows are removed
// when the owning session expires.
type Document struct {
	ID          string
	SessionID   string
	Name        string
	Kind        DocumentKind
	PageCount   int
	DurationSec float64
	WordCount   int
	ChunkCount  int
	CreatedAt   time.Time
}

// Chunk is one retrievable slice of a document.
type Chunk struct {
	ID         string
	DocumentID string
	Ord        int
	Text       string
	Page       int     // pdf documents, 0 when not applicable
	StartSec   float64 // audio documents
	EndSec     float64
	Embedding  []float32
}

// ScoredChunk is a retrieval hit with its cosine distance.
type ScoredChunk struct {
	Chunk
	Distance float64
}

// Citation points back into the source document.
type Citation struct {
	Source    string  `json:"source"`
	Page      int     `json:"page,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Snippet   string  `json:"snippet"`
	Distance  float64 `json:"distance"`
}

// RAGAnswer is the result of a question over an indexed document.
type RAGAnswer struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// DocumentDTO is the upload response shape.
type DocumentDTO struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Pages     int    `json:"pages,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Words     int    `json:"words"`
	Chunks    int    `json:"chunks"`
}

// AskRequest is the question body for both document kinds.
type AskRequest struct {
	Question string `json:"question"`
}
