package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// NewsAPIKey is optional; the fetcher runs in mock mode without it.
	NewsAPIKey  string `mapstructure:"news_api_key"`
	NewsBaseURL string `mapstructure:"news_base_url"`
	// OpenAIAPIKey is mandatory; Load fails without it.
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	CategoriesRaw       string        `mapstructure:"news_categories"`
	Categories          []string      `mapstructure:"-"`
	ArticleLimit        int           `mapstructure:"article_limit"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	CategoryDelayMs     int64         `mapstructure:"category_delay_ms"`
	CategoryDelay       time.Duration `mapstructure:"-"`

	LLMModel          string        `mapstructure:"llm_model"`
	LLMMaxTokens      int64         `mapstructure:"llm_max_tokens"`
	LLMTemperature    float64       `mapstructure:"llm_temperature"`
	LLMTimeoutSeconds int64         `mapstructure:"llm_timeout_seconds"`
	LLMTimeout        time.Duration `mapstructure:"-"`

	OutputDir             string        `mapstructure:"output_dir"`
	DigestIntervalSeconds int64         `mapstructure:"digest_interval"`
	DigestInterval        time.Duration `mapstructure:"-"`

	SinksFile string `mapstructure:"sinks_file"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-news-digest")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "news_aggregator.log")
	// Every unmarshalled key needs a registered default: AutomaticEnv alone
	// does not surface unregistered env-only keys to Unmarshal.
	v.SetDefault("news_api_key", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("news_base_url", "https://newsapi.org/v2")
	v.SetDefault("news_categories", "business,technology,consumer goods")
	v.SetDefault("article_limit", 20)
	v.SetDefault("fetch_timeout_seconds", 10)
	v.SetDefault("category_delay_ms", 100)
	v.SetDefault("llm_model", "gpt-4o-mini")
	v.SetDefault("llm_max_tokens", 1500)
	v.SetDefault("llm_temperature", 0.7)
	v.SetDefault("llm_timeout_seconds", 60)
	v.SetDefault("output_dir", ".")
	v.SetDefault("digest_interval", int64((12*time.Hour)/time.Second)) // seconds
	v.SetDefault("sinks_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/digests.db")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	cfg.Categories = splitCategories(cfg.CategoriesRaw)
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("news_categories must list at least one category")
	}
	if cfg.ArticleLimit < 0 {
		return nil, fmt.Errorf("invalid article_limit (must not be negative)")
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	if cfg.LLMTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid llm_timeout_seconds (must be positive seconds)")
	}
	if cfg.DigestIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid digest_interval (must be positive seconds)")
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	cfg.CategoryDelay = time.Duration(cfg.CategoryDelayMs) * time.Millisecond
	cfg.LLMTimeout = time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	cfg.DigestInterval = time.Duration(cfg.DigestIntervalSeconds) * time.Second

	return &cfg, nil
}

// splitCategories parses a comma-separated category list, dropping empties.
func splitCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
