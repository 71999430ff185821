package news

import (
	"context"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMergeArticlesPrependsAndReindexes(t *testing.T) {
	existing := []entity.Article{
		{Index: 1, Title: "Old story A", Link: "https://example.com/a"},
		{Index: 2, Title: "Old story B", Link: "https://example.com/b"},
	}
	fetched := []entity.Article{
		{Title: "New story C", Link: "https://example.com/c"},
		{Title: "Old story A", Link: "https://example.com/a"},
		{Title: "New story D", Link: "https://example.com/d"},
	}

	merged := MergeArticles(fetched, existing)

	require.Len(t, merged, 4)
	assert.Equal(t, "New story C", merged[0].Title)
	assert.Equal(t, "New story D", merged[1].Title)
	assert.Equal(t, "Old story A", merged[2].Title)
	assert.Equal(t, "Old story B", merged[3].Title)

	for i, article := range merged {
		assert.Equal(t, i+1, article.Index)
	}
}

func TestMergeArticlesEmptyExisting(t *testing.T) {
	fetched := []entity.Article{
		{Title: "Only story", Link: "https://example.com/x"},
	}
	merged := MergeArticles(fetched, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, 1, merged[0].Index)
}

func TestMergeArticlesDedupesByTitleWhenLinkMissing(t *testing.T) {
	existing := []entity.Article{{Index: 1, Title: "Same headline"}}
	fetched := []entity.Article{{Title: "Same headline"}}

	merged := MergeArticles(fetched, existing)
	assert.Len(t, merged, 1)
}

func TestDigestReport(t *testing.T) {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	uc := NewUsecase(store, nil, nil, nil, zap.NewNop())

	state := &sessionState{
		Articles: []entity.Article{
			{Index: 1, Title: "Monsoon arrives early", Source: "The Hindu",
				Published: "2026-08-20", Link: "https://example.com/monsoon"},
			{Index: 2, Title: "Markets rally", Source: "ET"},
		},
		Dives: map[int]*entity.DeepDive{},
	}
	entry := store.Create(App, state)

	report, err := uc.Report(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Contains(t, report, "# News Digest")
	assert.Contains(t, report, "## 1. Monsoon arrives early")
	assert.Contains(t, report, "Source: The Hindu, published 2026-08-20")
	assert.Contains(t, report, "Link: https://example.com/monsoon")
	assert.Contains(t, report, "## 2. Markets rally")
}

func TestDigestEmptySession(t *testing.T) {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	uc := NewUsecase(store, nil, nil, nil, zap.NewNop())

	entry := store.Create(App, &sessionState{Dives: map[int]*entity.DeepDive{}})
	_, err := uc.Digest(context.Background(), entry.ID)
	assert.ErrorIs(t, err, entity.ErrNoHeadlines)
}

func TestFindArticle(t *testing.T) {
	articles := []entity.Article{
		{Index: 1, Title: "first"},
		{Index: 2, Title: "second"},
	}

	article, err := findArticle(articles, 2)
	require.NoError(t, err)
	assert.Equal(t, "second", article.Title)

	_, err = findArticle(articles, 9)
	assert.ErrorIs(t, err, entity.ErrArticleNotFound)
}
