package headlines

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText strips any HTML markup NewsAPI occasionally leaks into titles and
// descriptions, returning trimmed plain text. Falls back to a plain trim when
// the fragment cannot be parsed.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
