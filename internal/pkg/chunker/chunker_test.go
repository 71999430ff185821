package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkShortText(t *testing.T) {
	c := NewDefault()
	pieces := c.Chunk("a short paragraph")

	require.Len(t, pieces, 1)
	assert.Equal(t, "a short paragraph", pieces[0].Text)
	assert.Equal(t, 0, pieces[0].Start)
}

func TestChunkEmptyInput(t *testing.T) {
	c := NewDefault()
	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("   \n\t  "))
}

func TestChunkOverlappingWindows(t *testing.T) {
	words := make([]string, 100)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	c := New(100, 20)
	pieces := c.Chunk(text)

	require.Greater(t, len(pieces), 1)
	for i := 1; i < len(pieces); i++ {
		assert.Less(t, pieces[i].Start, pieces[i-1].End, "windows overlap")
		assert.Greater(t, pieces[i].Start, pieces[i-1].Start, "windows advance")
	}
	assert.Equal(t, len([]rune(text)), pieces[len(pieces)-1].End)
}

func TestChunkSnapsToWhitespace(t *testing.T) {
	text := strings.Repeat("alpha beta ", 30)

	runes := []rune(text)
	c := New(50, 10)
	for _, piece := range c.Chunk(text) {
		if piece.End < len(runes) {
			assert.True(t, piece.End == 0 || runes[piece.End-1] == ' ',
				"window end lands on whitespace, got %q", string(runes[piece.End-1]))
		}
	}
}

func TestChunkUnbrokenToken(t *testing.T) {
	text := strings.Repeat("x", 250)

	c := New(100, 20)
	pieces := c.Chunk(text)

	require.NotEmpty(t, pieces)
	assert.Len(t, []rune(pieces[0].Text), 100, "hard cut when there is no boundary")
}

func TestNewClampsBadParameters(t *testing.T) {
	c := New(-5, 99999)
	pieces := c.Chunk(strings.Repeat("word ", 500))
	assert.NotEmpty(t, pieces)
}
