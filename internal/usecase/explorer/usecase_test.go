package explorer

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		in          string
		owner, repo string
	}{
		{"https://github.com/golang/go", "golang", "go"},
		{"https://github.com/golang/go/tree/master/src", "golang", "go"},
		{"github.com/jackc/pgx", "jackc", "pgx"},
		{"golang/go", "golang", "go"},
		{"https://github.com/golang/go.git", "golang", "go"},
	}
	for _, tc := range cases {
		owner, repo, err := ParseRepoURL(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.owner, owner, tc.in)
		assert.Equal(t, tc.repo, repo, tc.in)
	}
}

func TestParseRepoURLErrors(t *testing.T) {
	_, _, err := ParseRepoURL("")
	assert.ErrorIs(t, err, entity.ErrMissingField)

	_, _, err = ParseRepoURL("https://github.com/onlyowner")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestNormalizeParams(t *testing.T) {
	params := normalizeParams(map[string]any{"state": "open"}, "golang", "go")
	assert.Equal(t, "golang", params["owner"])
	assert.Equal(t, "go", params["repo"])
	assert.Equal(t, "OPEN", params["state"])

	params = normalizeParams(map[string]any{"owner": "other", "perPage": 5}, "golang", "go")
	assert.Equal(t, "other", params["owner"], "explicit params win")
	assert.Equal(t, 5, params["perPage"])
}

func TestNormalizeParamsNilInput(t *testing.T) {
	params := normalizeParams(nil, "golang", "go")
	assert.Equal(t, "golang", params["owner"])
	assert.Equal(t, "go", params["repo"])
}
