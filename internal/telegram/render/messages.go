package render

import (
	"fmt"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
)

// Telegram caps messages at 4096 characters; leave headroom for markup.
const messageCharLimit = 4000

const (
	MsgWelcome = `👋 Welcome to the news digest bot.

/news - fetch the latest headlines
/dive N - deep-dive report on headline N
/help - show this help`

	MsgHelp = `🤖 Commands:

/news - fetch the latest headlines (new ones go on top)
/dive N - research headline N and write a short report
/help - show this help

Start with /news.`

	MsgNoDigest = "No headlines yet. Use /news first."

	ErrGeneric     = "❌ Something went wrong. Please try again."
	ErrUnknownCmd  = "❌ Unknown command. Use /help."
	ErrBadDiveArg  = "Usage: /dive N, where N is a headline number from /news."
	ErrNoSuchIndex = "No headline with that number. Use /news to see the current list."
)

// Digest renders the headline list as a numbered plain-text message.
func Digest(digest *entity.NewsDigest) string {
	var b strings.Builder
	b.WriteString("📰 Latest headlines:\n\n")
	for _, article := range digest.Articles {
		fmt.Fprintf(&b, "%d. %s", article.Index, article.Title)
		if article.Source != "" {
			fmt.Fprintf(&b, " (%s)", article.Source)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nUse /dive N for a deep-dive report.")
	return Truncate(b.String())
}

// DiveReport renders a deep-dive report for one headline.
func DiveReport(dive *entity.DeepDive) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 %s\n\n%s", dive.Article.Title, dive.Report)
	if dive.Article.Link != "" {
		fmt.Fprintf(&b, "\n\nSource: %s", dive.Article.Link)
	}
	return Truncate(b.String())
}

// Truncate trims text to the Telegram message limit.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= messageCharLimit {
		return text
	}
	return string(runes[:messageCharLimit]) + "..."
}
