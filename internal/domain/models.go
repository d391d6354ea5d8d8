package domain

// Domain contains core models shared across the digest pipeline.

// Article is a normalized headline entry as returned by the headlines source.
// Instances are immutable once built and discarded after each cycle.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
}

// Origin tags where a fetch result came from.
type Origin string

const (
	// OriginLive marks articles retrieved from the headlines API.
	OriginLive Origin = "live"
	// OriginMock marks the fixed offline article set substituted when the
	// API is unconfigured or unreachable.
	OriginMock Origin = "mock"
)

// FetchResult carries the articles for one cycle together with their origin,
// so callers never need to inspect why mock data was used.
type FetchResult struct {
	Articles []Article
	Origin   Origin
}

// Live wraps articles fetched from the real source.
func Live(articles []Article) FetchResult {
	return FetchResult{Articles: articles, Origin: OriginLive}
}

// Mock wraps the offline fallback article set.
func Mock(articles []Article) FetchResult {
	return FetchResult{Articles: articles, Origin: OriginMock}
}
