package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/archive"
	"github.com/samvad-hq/samvad-news-digest/internal/config"
	"github.com/samvad-hq/samvad-news-digest/internal/domain"
	"github.com/samvad-hq/samvad-news-digest/internal/fetch"
	"github.com/samvad-hq/samvad-news-digest/internal/logger"
	"github.com/samvad-hq/samvad-news-digest/internal/storage"
	"github.com/samvad-hq/samvad-news-digest/internal/summarize"
	"github.com/samvad-hq/samvad-news-digest/pkg/headlines"
	"github.com/samvad-hq/samvad-news-digest/pkg/httpclient"
	"github.com/samvad-hq/samvad-news-digest/pkg/llm"
	"github.com/samvad-hq/samvad-news-digest/pkg/sinks"
)

// Fetcher retrieves the articles for one cycle.
type Fetcher interface {
	Fetch(ctx context.Context, limit int) domain.FetchResult
}

// SummaryGenerator condenses articles into the digest text.
type SummaryGenerator interface {
	Summarize(ctx context.Context, articles []domain.Article) string
}

// DigestWriter persists the digest text.
type DigestWriter interface {
	Save(summary string) (string, bool)
}

// Deliverer fans the digest event out to downstream sinks.
type Deliverer interface {
	Deliver(ctx context.Context, evt sinks.Event) (int, error)
	Size() int
}

// Digester represents the news digest runtime. It runs the
// fetch-summarize-persist pipeline once at startup and then on a fixed
// interval until the context is cancelled. Each pipeline stage owns its own
// fallback, so a cycle never aborts the loop.
type Digester struct {
	cfg        *config.Config
	fetcher    Fetcher
	summarizer SummaryGenerator
	writer     DigestWriter
	fanout     Deliverer
	store      storage.Store
	interval   time.Duration
	out        io.Writer
	log        logger.Logger
}

// NewDigester builds a digester runtime from config.
func NewDigester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Digester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := headlines.NewClient(
		httpclient.NewRestyClient(cfg.FetchTimeout),
		cfg.NewsBaseURL,
		cfg.NewsAPIKey,
	)
	fetcher := fetch.NewService(fetch.Options{
		Client:        client,
		Categories:    cfg.Categories,
		CategoryDelay: cfg.CategoryDelay,
		HasAPIKey:     strings.TrimSpace(cfg.NewsAPIKey) != "",
		Log:           log,
	})

	summarizer := summarize.New(summarize.Options{
		Chat:        llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel),
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
		Log:         log,
	})

	writer := archive.NewWriter(cfg.OutputDir, log)

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	fanout, err := buildFanout(ctx, cfg.SinksFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Digester{
		cfg:        cfg,
		fetcher:    fetcher,
		summarizer: summarizer,
		writer:     writer,
		fanout:     fanout,
		store:      store,
		interval:   cfg.DigestInterval,
		out:        os.Stdout,
		log:        log,
	}, nil
}

// buildFanout loads the sink registry when a sinks file is configured.
// Without one the digest is file-only and the fanout is empty.
func buildFanout(ctx context.Context, sinksFile string, log logger.Logger) (*sinks.Fanout, error) {
	if strings.TrimSpace(sinksFile) == "" {
		return sinks.NewFanout(nil), nil
	}

	sinkReg, err := sinks.LoadRegistry(sinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}

	enabled := sinkReg.Enabled()
	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	sinkSummaries := make([]map[string]string, 0, len(enabled))
	for _, sinkCfg := range enabled {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(sinkSummaries),
		"sinks": sinkSummaries,
	})

	return sinks.NewFanout(built), nil
}

// Run executes the pipeline once immediately, then on every interval tick
// until the context is cancelled.
func (d *Digester) Run(ctx context.Context) error {
	if d == nil || d.fetcher == nil {
		return fmt.Errorf("digester is not initialized")
	}
	defer d.closeStore()

	if rec, ok, err := d.store.LastRun(); err != nil {
		d.log.WarnObj("read last run failed", "error", err.Error())
	} else if ok {
		d.log.InfoObj("previous digest run found", "last_run", map[string]any{
			"ran_at":   rec.RanAt.Format(time.RFC3339),
			"filename": rec.Filename,
			"origin":   rec.Origin,
		})
	}

	d.log.InfoObj("digest loop starting", "digester_state", map[string]any{
		"categories":      d.cfg.Categories,
		"article_limit":   d.cfg.ArticleLimit,
		"sinks_count":     d.fanout.Size(),
		"digest_interval": d.interval.String(),
	})

	d.runOnce(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.InfoObj("digest loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

// runOnce performs a single fetch-summarize-persist-deliver cycle. Every
// failure mode inside the pipeline degrades locally, so this never returns.
func (d *Digester) runOnce(ctx context.Context) {
	start := time.Now()
	d.log.InfoObj("digest cycle started", "started_at", start.UTC())

	result := d.fetcher.Fetch(ctx, d.cfg.ArticleLimit)
	d.log.InfoObj("articles fetched", "fetch_result", map[string]any{
		"count":  len(result.Articles),
		"origin": string(result.Origin),
	})

	summary := d.summarizer.Summarize(ctx, result.Articles)

	// Console copy first so the operator keeps visibility even when the
	// file write fails.
	d.printDigest(summary)

	filename, saved := d.writer.Save(summary)
	if !saved {
		filename = ""
	}

	if err := d.store.RecordRun(storage.RunRecord{
		RanAt:        start,
		Filename:     filename,
		Origin:       string(result.Origin),
		ArticleCount: len(result.Articles),
	}); err != nil {
		d.log.ErrorObj("record run failed", "error", err.Error())
	}

	if d.fanout.Size() > 0 {
		delivered, err := d.fanout.Deliver(ctx, sinks.NewEvent(result, summary, filename))
		if err != nil {
			d.log.ErrorObj("digest delivery failed for some sinks", "delivery_error", map[string]any{
				"delivered": delivered,
				"error":     err.Error(),
			})
		} else {
			d.log.InfoObj("digest delivered", "delivered_count", delivered)
		}
	}

	d.log.InfoObj("digest cycle completed", "elapsed_ms", time.Since(start).Milliseconds())
}

// printDigest mirrors the digest to the console between separator rules.
func (d *Digester) printDigest(summary string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(d.out, "\n%s\n%s\n%s\n\n", rule, summary, rule)
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (d *Digester) closeStore() {
	if d == nil || d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		d.log.ErrorObj("storage close failed", "error", err)
	}
}
