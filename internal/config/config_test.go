package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFailsWithoutOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when OPENAI_API_KEY is missing")
	} else if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("error should name the missing variable, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OpenAIAPIKey != "sk-test" {
		t.Fatalf("openai api key not read from environment, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.NewsAPIKey != "" {
		t.Fatalf("expected empty news api key by default, got %q", cfg.NewsAPIKey)
	}
	if cfg.ArticleLimit != 20 {
		t.Fatalf("article_limit default = %d", cfg.ArticleLimit)
	}
	if len(cfg.Categories) != 3 || cfg.Categories[0] != "business" {
		t.Fatalf("unexpected default categories: %v", cfg.Categories)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("fetch timeout default = %v", cfg.FetchTimeout)
	}
	if cfg.DigestInterval != 12*time.Hour {
		t.Fatalf("digest interval default = %v", cfg.DigestInterval)
	}
	if cfg.LogFile != "news_aggregator.log" {
		t.Fatalf("log file default = %q", cfg.LogFile)
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("NEWS_CATEGORIES", "science, health")
	t.Setenv("DIGEST_INTERVAL", "3600")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OpenAIAPIKey != "sk-test" {
		t.Fatalf("openai api key = %q", cfg.OpenAIAPIKey)
	}
	if cfg.NewsAPIKey != "news-key" {
		t.Fatalf("news api key = %q", cfg.NewsAPIKey)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "science" || cfg.Categories[1] != "health" {
		t.Fatalf("categories = %v", cfg.Categories)
	}
	if cfg.DigestInterval != time.Hour {
		t.Fatalf("digest interval = %v", cfg.DigestInterval)
	}
}

func TestLoadRejectsInvalidInterval(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DIGEST_INTERVAL", "-5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative digest_interval")
	}
}
