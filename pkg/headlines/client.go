package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/domain"
	"github.com/samvad-hq/samvad-news-digest/pkg/httpclient"
)

// Package headlines wraps the NewsAPI top-headlines resource behind a small
// client interface and normalizes its responses into domain articles.

const (
	topHeadlinesPath = "/top-headlines"
	languageEnglish  = "en"

	// DefaultTimeout bounds each top-headlines request.
	DefaultTimeout = 10 * time.Second
)

// Client retrieves normalized headlines for a single category.
type Client interface {
	TopHeadlines(ctx context.Context, category string, pageSize int) ([]domain.Article, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within headlines.
type HTTPClient = httpclient.Client

// newsAPIClient implements Client against the NewsAPI HTTP surface.
type newsAPIClient struct {
	client  HTTPClient
	baseURL string
	apiKey  string
}

// NewClient builds a NewsAPI-backed headlines client.
func NewClient(client HTTPClient, baseURL, apiKey string) Client {
	if client == nil {
		client = httpclient.NewRestyClient(DefaultTimeout)
	}
	return &newsAPIClient{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
	}
}

// topHeadlinesResponse mirrors the NewsAPI top-headlines JSON body.
type topHeadlinesResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// TopHeadlines fetches one category page and normalizes its articles.
// Entries missing a title or description are discarded; ordering is preserved.
func (c *newsAPIClient) TopHeadlines(ctx context.Context, category string, pageSize int) ([]domain.Article, error) {
	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("headlines category is empty")
	}
	if pageSize <= 0 {
		return nil, nil
	}

	query := map[string]string{
		"apiKey":   c.apiKey,
		"category": category,
		"language": languageEnglish,
		"pageSize": fmt.Sprintf("%d", pageSize),
	}

	resp, err := c.client.Get(ctx, c.baseURL+topHeadlinesPath, query, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s headlines: %w", category, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s headlines returned status %d body: %s", category, resp.StatusCode(), responseSnippet(body))
	}

	var parsed topHeadlinesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode %s headlines: %w", category, err)
	}

	articles := make([]domain.Article, 0, len(parsed.Articles))
	for _, raw := range parsed.Articles {
		title := CleanText(raw.Title)
		description := CleanText(raw.Description)
		if title == "" || description == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title:       title,
			Description: description,
			URL:         strings.TrimSpace(raw.URL),
			PublishedAt: strings.TrimSpace(raw.PublishedAt),
			Source:      strings.TrimSpace(raw.Source.Name),
		})
	}
	return articles, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
