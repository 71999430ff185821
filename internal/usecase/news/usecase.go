package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// App is the session namespace of the news aggregator.
const App = "news"

const (
	fetchLimit       = 10
	diveSearchLimit  = 5
	diveTemperature  = 0.3
	snippetCharLimit = 300
	articleCharLimit = 2000
)

const diveSystemPrompt = "You are a news researcher. Write clearly for a general audience."

// Usecase aggregates latest headlines and produces deep-dive reports
// on individual articles.
type Usecase struct {
	store  *sessions.Store
	news   NewsConnector
	search SearchConnector
	llm    LLMConnector
	logger *zap.Logger
}

type sessionState struct {
	Articles []entity.Article
	Dives    map[int]*entity.DeepDive
}

func NewUsecase(store *sessions.Store, news NewsConnector, search SearchConnector, llm LLMConnector, logger *zap.Logger) *Usecase {
	return &Usecase{store: store, news: news, search: search, llm: llm, logger: logger}
}

// Refresh fetches the latest headlines into a session. New articles are
// prepended to what the session already holds and the whole list is
// re-indexed from 1. An empty sessionID starts a fresh session.
func (uc *Usecase) Refresh(ctx context.Context, sessionID string) (*entity.NewsDigest, error) {
	var state *sessionState
	if sessionID == "" {
		state = &sessionState{Dives: make(map[int]*entity.DeepDive)}
		entry := uc.store.Create(App, state)
		sessionID = entry.ID
	} else {
		entry, err := uc.store.Get(sessionID, App)
		if err != nil {
			return nil, err
		}
		state = entry.Payload.(*sessionState)
	}

	fetched, err := uc.news.FetchLatest(ctx, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	state.Articles = MergeArticles(fetched, state.Articles)
	uc.store.Update(sessionID, state)

	ctxzap.Info(ctx, "headlines refreshed",
		zap.String("session_id", sessionID),
		zap.Int("fetched", len(fetched)),
		zap.Int("total", len(state.Articles)),
	)

	return &entity.NewsDigest{SessionID: sessionID, Articles: state.Articles}, nil
}

// Digest returns the session's current headline list.
func (uc *Usecase) Digest(ctx context.Context, sessionID string) (*entity.NewsDigest, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	state := entry.Payload.(*sessionState)
	if len(state.Articles) == 0 {
		return nil, entity.ErrNoHeadlines
	}
	return &entity.NewsDigest{SessionID: sessionID, Articles: state.Articles}, nil
}

// Report renders the current digest as a markdown summary for download.
func (uc *Usecase) Report(ctx context.Context, sessionID string) (string, error) {
	digest, err := uc.Digest(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# News Digest\n\n")
	for _, article := range digest.Articles {
		fmt.Fprintf(&b, "## %d. %s\n\n", article.Index, article.Title)
		if article.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", article.Description)
		}
		fmt.Fprintf(&b, "Source: %s", article.Source)
		if article.Published != "" {
			fmt.Fprintf(&b, ", published %s", article.Published)
		}
		b.WriteString("\n")
		if article.Link != "" {
			fmt.Fprintf(&b, "Link: %s\n", article.Link)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// DeepDive researches one headline: web search for context, then a
// structured report. Dives are cached per article index.
func (uc *Usecase) DeepDive(ctx context.Context, sessionID string, index int) (*entity.DeepDive, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	state := entry.Payload.(*sessionState)

	if dive, ok := state.Dives[index]; ok {
		return dive, nil
	}

	article, err := findArticle(state.Articles, index)
	if err != nil {
		return nil, err
	}

	findings, err := uc.search.Search(ctx, article.Title+" India news")
	if err != nil {
		ctxzap.Warn(ctx, "dive search failed, reporting from headline only", zap.Error(err))
		findings = nil
	}
	if len(findings) > diveSearchLimit {
		findings = findings[:diveSearchLimit]
	}

	report, err := uc.writeReport(ctx, article, findings)
	if err != nil {
		return nil, err
	}

	dive := &entity.DeepDive{Article: *article, Findings: findings, Report: report}
	state.Dives[index] = dive
	uc.store.Update(sessionID, state)

	ctxzap.Info(ctx, "deep dive produced",
		zap.Int("article_index", index),
		zap.Int("findings", len(findings)),
	)
	return dive, nil
}

func (uc *Usecase) writeReport(ctx context.Context, article *entity.Article, findings []entity.SearchResult) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a deep-dive report on this news story.\n\nHeadline: %s\n", article.Title)
	if article.Description != "" {
		fmt.Fprintf(&b, "Summary: %s\n", article.Description)
	}
	fmt.Fprintf(&b, "Source: %s, published %s\n", article.Source, article.Published)

	if len(findings) > 0 {
		b.WriteString("\nAdditional context from the web:\n")
		for i, finding := range findings {
			snippet := finding.Snippet
			if runes := []rune(snippet); len(runes) > snippetCharLimit {
				snippet = string(runes[:snippetCharLimit])
			}
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, finding.Title, snippet)
		}

		// Pull the full text of the best hit when it is readable.
		if text, err := uc.search.FetchReadable(ctx, findings[0].URL); err == nil && strings.TrimSpace(text) != "" {
			if runes := []rune(text); len(runes) > articleCharLimit {
				text = string(runes[:articleCharLimit])
			}
			fmt.Fprintf(&b, "\nFull text of the top source:\n%s\n", text)
		}
	}

	b.WriteString(`
Structure the report with exactly these markdown sections:
## What Happened
## Key Facts
## Why It Matters

Keep it between 150 and 200 words total.`)

	report, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "system", Content: diveSystemPrompt},
		{Role: "user", Content: b.String()},
	}, diveTemperature)
	if err != nil {
		return "", fmt.Errorf("write dive report: %w", err)
	}
	return strings.TrimSpace(report), nil
}

// MergeArticles prepends newly fetched articles to the existing list,
// dropping ones already present by link, and re-indexes from 1.
func MergeArticles(fetched, existing []entity.Article) []entity.Article {
	seen := make(map[string]bool, len(existing))
	for _, article := range existing {
		seen[articleKey(article)] = true
	}

	var fresh []entity.Article
	for _, article := range fetched {
		if seen[articleKey(article)] {
			continue
		}
		seen[articleKey(article)] = true
		fresh = append(fresh, article)
	}

	merged := append(fresh, existing...)
	for i := range merged {
		merged[i].Index = i + 1
	}
	return merged
}

func articleKey(article entity.Article) string {
	if article.Link != "" {
		return article.Link
	}
	return article.Title
}

func findArticle(articles []entity.Article, index int) (*entity.Article, error) {
	for i := range articles {
		if articles[i].Index == index {
			return &articles[i], nil
		}
	}
	return nil, entity.ErrArticleNotFound
}
