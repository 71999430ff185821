package formatter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(title, text string) ([]byte, error) {
	var buf bytes.Buffer
	// Bodies produced by the apps are already markdown; only prepend a
	// title when the body doesn't start with a heading of its own.
	if strings.HasPrefix(strings.TrimSpace(text), "#") {
		fmt.Fprintf(&buf, "%s\n", text)
	} else {
		fmt.Fprintf(&buf, "# %s\n\n%s\n", title, text)
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
