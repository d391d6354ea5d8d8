package sinks

import (
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/domain"
)

// Event is the digest payload delivered downstream after each cycle.
type Event struct {
	Date         string        `json:"date"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Origin       domain.Origin `json:"origin"`
	ArticleCount int           `json:"article_count"`
	Summary      string        `json:"summary"`
	Filename     string        `json:"filename,omitempty"`
}

// NewEvent constructs an Event for a completed digest cycle.
func NewEvent(result domain.FetchResult, summary, filename string) Event {
	now := time.Now().UTC()
	return Event{
		Date:         now.Format("2006-01-02"),
		GeneratedAt:  now,
		Origin:       result.Origin,
		ArticleCount: len(result.Articles),
		Summary:      summary,
		Filename:     filename,
	}
}
