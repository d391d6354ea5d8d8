package headlines

import "github.com/samvad-hq/samvad-news-digest/internal/domain"

// MockArticles returns the fixed offline article set used when the NewsAPI
// key is not configured or the live fetch fails. The slice is rebuilt on each
// call so callers can never mutate the canonical set.
func MockArticles() []domain.Article {
	return []domain.Article{
		{
			Title:       "Tech Giants Report Strong Q3 Earnings",
			Description: "Major technology companies exceeded expectations in their quarterly reports.",
			URL:         "https://example.com/tech-earnings",
			PublishedAt: "2024-01-15T10:00:00Z",
			Source:      "TechNews",
		},
		{
			Title:       "Global Markets Show Positive Momentum",
			Description: "Stock markets worldwide continue upward trend amid economic recovery.",
			URL:         "https://example.com/markets",
			PublishedAt: "2024-01-15T09:30:00Z",
			Source:      "FinanceDaily",
		},
	}
}
