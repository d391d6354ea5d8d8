package summarize

import (
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/domain"
)

const (
	digestDateLayout = "January 2, 2006"
	fallbackEntryMax = 10
)

// BuildPrompt renders the deterministic user prompt embedding every article
// in input order plus the current date.
func BuildPrompt(articles []domain.Article, now time.Time) string {
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, fmt.Sprintf(
			"Title: %s\nDescription: %s\nSource: %s\nPublished: %s",
			a.Title, a.Description, a.Source, a.PublishedAt,
		))
	}

	var b strings.Builder
	b.WriteString("Based on the following news articles, create a concise \"Top 10 News\" summary.\n")
	b.WriteString("Select the 10 most important and diverse stories, and present them in a clear,\n")
	b.WriteString("numbered format with brief descriptions.\n\n")
	b.WriteString("News Articles:\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\nFormat your response as:\n")
	b.WriteString("TOP 10 NEWS - " + now.Format(digestDateLayout) + "\n\n")
	b.WriteString("1. [Brief headline] - [Concise summary in 1-2 sentences]\n")
	b.WriteString("2. [Brief headline] - [Concise summary in 1-2 sentences]\n")
	b.WriteString("...and so on\n\n")
	b.WriteString("Focus on the most newsworthy and impactful stories.")
	return b.String()
}

// FallbackSummary renders up to the first ten articles verbatim in input
// order, with no ranking or rewriting. Used when the LLM call fails.
func FallbackSummary(articles []domain.Article, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TOP 10 NEWS - %s\n\n", now.Format(digestDateLayout))

	for i, a := range articles {
		if i >= fallbackEntryMax {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(&b, "   %s\n", a.Description)
		fmt.Fprintf(&b, "   Source: %s\n\n", a.Source)
	}
	return b.String()
}
