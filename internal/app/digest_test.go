package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/archive"
	"github.com/samvad-hq/samvad-news-digest/internal/config"
	"github.com/samvad-hq/samvad-news-digest/internal/domain"
	"github.com/samvad-hq/samvad-news-digest/internal/logger"
	"github.com/samvad-hq/samvad-news-digest/internal/storage"
	"github.com/samvad-hq/samvad-news-digest/internal/summarize"
	"github.com/samvad-hq/samvad-news-digest/pkg/headlines"
	"github.com/samvad-hq/samvad-news-digest/pkg/llm"
	"github.com/samvad-hq/samvad-news-digest/pkg/sinks"
)

// fakeFetcher returns a preset fetch result.
type fakeFetcher struct {
	result domain.FetchResult
}

func (f *fakeFetcher) Fetch(context.Context, int) domain.FetchResult {
	return f.result
}

// failingChat simulates an unreachable LLM.
type failingChat struct{}

func (failingChat) Complete(context.Context, llm.ChatRequest) (string, error) {
	return "", errors.New("llm unavailable")
}

func newTestDigester(t *testing.T, fetcher Fetcher, out *bytes.Buffer) (*Digester, string) {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.NewStore("none", "", storage.Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	return &Digester{
		cfg:        &config.Config{ArticleLimit: 20},
		fetcher:    fetcher,
		summarizer: summarize.New(summarize.Options{Chat: failingChat{}}),
		writer:     archive.NewWriter(dir, nil),
		fanout:     sinks.NewFanout(nil),
		store:      store,
		interval:   time.Hour,
		out:        out,
		log:        logger.NopLogger{},
	}, dir
}

func savedSummaryFile(t *testing.T, dir string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "news_summary_*.txt"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected exactly one summary file, got %v (err=%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read summary file: %v", err)
	}
	return string(data)
}

func TestRunOnceMockArticlesWithFailingLLMWritesFallback(t *testing.T) {
	var out bytes.Buffer
	fetcher := &fakeFetcher{result: domain.Mock(headlines.MockArticles())}
	d, dir := newTestDigester(t, fetcher, &out)

	d.runOnce(context.Background())

	content := savedSummaryFile(t, dir)
	if !strings.Contains(content, "TOP 10 NEWS - "+time.Now().Format("January 2, 2006")) {
		t.Fatalf("fallback header missing today's date:\n%s", content)
	}
	if !strings.Contains(content, "1. Tech Giants Report Strong Q3 Earnings") {
		t.Fatalf("first mock article missing:\n%s", content)
	}
	if !strings.Contains(content, "2. Global Markets Show Positive Momentum") {
		t.Fatalf("second mock article missing:\n%s", content)
	}

	if !strings.Contains(out.String(), "1. Tech Giants Report Strong Q3 Earnings") {
		t.Fatalf("console copy missing digest:\n%s", out.String())
	}
}

func TestRunOnceEmptyFetchWritesNoArticlesMessage(t *testing.T) {
	var out bytes.Buffer
	fetcher := &fakeFetcher{result: domain.Live(nil)}
	d, dir := newTestDigester(t, fetcher, &out)

	d.runOnce(context.Background())

	content := savedSummaryFile(t, dir)
	if content != summarize.NoArticlesMessage {
		t.Fatalf("file content = %q, want exactly the no-articles message", content)
	}
	if !strings.Contains(out.String(), summarize.NoArticlesMessage) {
		t.Fatalf("console copy missing no-articles message:\n%s", out.String())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	fetcher := &fakeFetcher{result: domain.Live(nil)}
	d, _ := newTestDigester(t, fetcher, &out)
	d.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on cancel: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not exit after context cancellation")
	}
}
