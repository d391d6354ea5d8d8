package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-news-digest/internal/app"
	"github.com/samvad-hq/samvad-news-digest/internal/config"
	"github.com/samvad-hq/samvad-news-digest/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "news digest start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("news digest starting", "startup_config", map[string]any{
		"app_name":        cfg.AppName,
		"env":             cfg.Env,
		"categories":      cfg.Categories,
		"article_limit":   cfg.ArticleLimit,
		"llm_model":       cfg.LLMModel,
		"digest_interval": cfg.DigestInterval.String(),
		"output_dir":      cfg.OutputDir,
		"mock_mode":       cfg.NewsAPIKey == "",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	digester, err := app.NewDigester(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize digester", "error", err)
		return err
	}

	fmt.Println("News Digest starting...")
	fmt.Printf("Scheduling digest runs every %s\n", cfg.DigestInterval)
	fmt.Println("Press Ctrl+C to stop")

	if err := digester.Run(ctx); err != nil {
		return fmt.Errorf("digester run: %w", err)
	}

	fmt.Println("\nNews Digest stopped.")
	logger.InfoObj("news digest stopped", "reason", "operator interrupt")
	return nil
}
