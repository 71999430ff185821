package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is the extracted text of one PDF page.
type Page struct {
	Number int
	Text   string
}

// PDFPages extracts plain text per page. Pages that fail to parse are
// skipped; the caller decides whether an all-empty result is an error.
func PDFPages(data []byte) ([]Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages []Page
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, Page{Number: i, Text: text})
	}

	return pages, nil
}

// JoinPages concatenates pages with [Page N] markers. The markers are
// carried into chunks so answers can cite page numbers.
func JoinPages(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "[Page %d] %s\n\n", p.Number, p.Text)
	}
	return strings.TrimSpace(b.String())
}

type pageMark struct {
	offset int // rune offset of the marker
	page   int
}

// PageIndex maps rune offsets of the joined text back to page numbers.
type PageIndex []pageMark

// BuildPageIndex scans the joined text for [Page N] markers.
func BuildPageIndex(text string) PageIndex {
	var idx PageIndex
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '[' {
			continue
		}
		page, width := parsePageMarker(runes[i:])
		if width > 0 {
			idx = append(idx, pageMark{offset: i, page: page})
			i += width - 1
		}
	}
	return idx
}

// PageAt returns the page whose marker last precedes the offset.
// Returns 0 before the first marker.
func (idx PageIndex) PageAt(runeOffset int) int {
	page := 0
	for _, m := range idx {
		if m.offset > runeOffset {
			break
		}
		page = m.page
	}
	return page
}

func parsePageMarker(runes []rune) (page, width int) {
	const prefix = "[Page "
	if len(runes) < len(prefix)+2 {
		return 0, 0
	}
	for i, r := range prefix {
		if runes[i] != r {
			return 0, 0
		}
	}
	i := len(prefix)
	for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
		page = page*10 + int(runes[i]-'0')
		i++
	}
	if i == len(prefix) || i >= len(runes) || runes[i] != ']' {
		return 0, 0
	}
	return page, i + 1
}

// CountWords reports whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
