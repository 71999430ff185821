package chunker

import (
	"strings"
	"unicode"
)

const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// Piece is one chunk with its rune offset into the source text.
// Offsets drive timestamp interpolation for audio transcripts.
type Piece struct {
	Text  string
	Start int
	End   int
}

// Chunker splits text into fixed-size overlapping windows, snapping
// window ends back to whitespace so words are not cut in half.
type Chunker struct {
	size    int
	overlap int
}

func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

func NewDefault() *Chunker {
	return New(DefaultSize, DefaultOverlap)
}

// Chunk splits text into overlapping pieces. Whitespace-only input
// yields no pieces.
func (c *Chunker) Chunk(text string) []Piece {
	runes := []rune(text)
	total := len(runes)

	var pieces []Piece
	start := 0
	for start < total {
		end := start + c.size
		if end >= total {
			end = total
		} else {
			end = snapToBoundary(runes, start, end)
		}

		slice := strings.TrimSpace(string(runes[start:end]))
		if slice != "" {
			pieces = append(pieces, Piece{
				Text:  slice,
				Start: start,
				End:   end,
			})
		}

		if end == total {
			break
		}

		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return pieces
}

// snapToBoundary walks back from end to the nearest whitespace after
// start. If the window contains a single unbroken token the hard cut
// stands.
func snapToBoundary(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
