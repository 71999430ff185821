package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPages(t *testing.T) {
	joined := JoinPages([]Page{
		{Number: 1, Text: "first page"},
		{Number: 3, Text: "third page"},
	})
	assert.Equal(t, "[Page 1] first page\n\n[Page 3] third page", joined)
	assert.Empty(t, JoinPages(nil))
}

func TestPageIndex(t *testing.T) {
	joined := JoinPages([]Page{
		{Number: 1, Text: "alpha"},
		{Number: 2, Text: "beta"},
		{Number: 10, Text: "gamma"},
	})
	idx := BuildPageIndex(joined)
	require.Len(t, idx, 3)

	assert.Equal(t, 1, idx.PageAt(0))
	assert.Equal(t, 1, idx.PageAt(10))
	assert.Equal(t, 10, idx.PageAt(len([]rune(joined))-1))
}

func TestPageAtBeforeFirstMarker(t *testing.T) {
	idx := BuildPageIndex("no markers here")
	assert.Zero(t, idx.PageAt(5))
}

func TestBuildPageIndexIgnoresFalseMarkers(t *testing.T) {
	idx := BuildPageIndex("[Page one] text [Pag 2] more [Page 4] real")
	require.Len(t, idx, 1)
	assert.Equal(t, 4, idx.PageAt(50))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 3, CountWords("one  two\nthree"))
	assert.Zero(t, CountWords("  "))
}
