package headlines

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samvad-hq/samvad-news-digest/pkg/httpclient"
)

func TestTopHeadlinesFiltersIncompleteArticles(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"apiKey":   r.URL.Query().Get("apiKey"),
			"category": r.URL.Query().Get("category"),
			"language": r.URL.Query().Get("language"),
			"pageSize": r.URL.Query().Get("pageSize"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"articles": [
				{"title": "First", "description": "first description", "url": "https://a.example/1", "publishedAt": "2026-08-25T10:00:00Z", "source": {"name": "Alpha"}},
				{"title": "", "description": "no title", "url": "https://a.example/2", "publishedAt": "2026-08-25T10:01:00Z", "source": {"name": "Alpha"}},
				{"title": "No description", "description": "", "url": "https://a.example/3", "publishedAt": "2026-08-25T10:02:00Z", "source": {"name": "Alpha"}},
				{"title": "Second", "description": "second description", "url": "https://a.example/4", "publishedAt": "2026-08-25T10:03:00Z", "source": {"name": "Beta"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(2*time.Second), srv.URL, "test-key")
	articles, err := client.TopHeadlines(context.Background(), "business", 5)
	if err != nil {
		t.Fatalf("TopHeadlines: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles after filtering, got %d", len(articles))
	}
	if articles[0].Title != "First" || articles[1].Title != "Second" {
		t.Fatalf("articles out of order: %+v", articles)
	}
	if articles[1].Source != "Beta" {
		t.Fatalf("unexpected source: %s", articles[1].Source)
	}

	if gotQuery["apiKey"] != "test-key" {
		t.Fatalf("apiKey query param = %q", gotQuery["apiKey"])
	}
	if gotQuery["category"] != "business" {
		t.Fatalf("category query param = %q", gotQuery["category"])
	}
	if gotQuery["language"] != "en" {
		t.Fatalf("language query param = %q", gotQuery["language"])
	}
	if gotQuery["pageSize"] != "5" {
		t.Fatalf("pageSize query param = %q", gotQuery["pageSize"])
	}
}

func TestTopHeadlinesErrorsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":"error","code":"apiKeyInvalid"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(2*time.Second), srv.URL, "bad-key")
	if _, err := client.TopHeadlines(context.Background(), "technology", 5); err == nil {
		t.Fatalf("expected error on 401 response")
	}
}

func TestTopHeadlinesStripsHTMLMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"articles": [
				{"title": "<b>Bold</b> headline", "description": "Markets &amp; trade rallied", "url": "https://a.example/1", "publishedAt": "2026-08-25T10:00:00Z", "source": {"name": "Alpha"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(2*time.Second), srv.URL, "test-key")
	articles, err := client.TopHeadlines(context.Background(), "business", 1)
	if err != nil {
		t.Fatalf("TopHeadlines: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "Bold headline" {
		t.Fatalf("title not sanitized: %q", articles[0].Title)
	}
	if articles[0].Description != "Markets & trade rallied" {
		t.Fatalf("description not sanitized: %q", articles[0].Description)
	}
}

func TestCleanTextLeavesPlainTextAlone(t *testing.T) {
	if got := CleanText("  plain headline  "); got != "plain headline" {
		t.Fatalf("CleanText = %q", got)
	}
	if got := CleanText(""); got != "" {
		t.Fatalf("CleanText empty = %q", got)
	}
}
