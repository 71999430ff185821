package entity

// Article is one aggregated headline.
type Article struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	Published   string `json:"published"`
	Category    string `json:"category"`
}

// NewsDigest is the session's accumulated headline list.
type NewsDigest struct {
	SessionID string    `json:"session_id"`
	Articles  []Article `json:"articles"`
}

// DeepDive is the researched report for a single article.
type DeepDive struct {
	Article  Article        `json:"article"`
	Findings []SearchResult `json:"findings"`
	Report   string         `json:"report"`
}

// Wire types for the newsdata.io latest-headlines API.

type NewsDataArticle struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SourceID    string   `json:"source_id"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pubDate"`
	Category    []string `json:"category"`
}

type NewsDataResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Results      []NewsDataArticle `json:"results"`
}

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
