package websearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fstory">Example Story</a>
  <a class="result__snippet">  A snippet about the story.  </a>
</div>
<div class="result">
  <a class="result__a" href="https://direct.example.org/page">Direct Link</a>
  <a class="result__snippet">Second snippet.</a>
</div>
<div class="result">
  <a class="result__a" href="https://third.example.org/">Third</a>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	results, err := ParseResults([]byte(searchPage), 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Example Story", results[0].Title)
	assert.Equal(t, "https://example.com/story", results[0].URL, "redirect wrapper is unwrapped")
	assert.Equal(t, "A snippet about the story.", results[0].Snippet)

	assert.Equal(t, "https://direct.example.org/page", results[1].URL)
	assert.Empty(t, results[2].Snippet)
}

func TestParseResultsLimit(t *testing.T) {
	results, err := ParseResults([]byte(searchPage), 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestParseResultsNoHits(t *testing.T) {
	results, err := ParseResults([]byte("<html><body><p>nothing</p></body></html>"), 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResolveRedirect(t *testing.T) {
	assert.Equal(t, "https://example.com/a", resolveRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa"))
	assert.Equal(t, "https://plain.example.com/", resolveRedirect("https://plain.example.com/"))
	assert.Equal(t, "::bad::", resolveRedirect("::bad::"))
}
