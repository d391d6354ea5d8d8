package fetch

import (
	"context"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/domain"
	"github.com/samvad-hq/samvad-news-digest/internal/logger"
	"github.com/samvad-hq/samvad-news-digest/pkg/headlines"
)

// Service coordinates headline retrieval across the configured categories and
// owns the mock fallback. Callers receive a tagged FetchResult and never an
// error: a failed or unconfigured fetch degrades to the fixed mock set.
type Service struct {
	client        headlines.Client
	categories    []string
	categoryDelay time.Duration
	hasAPIKey     bool
	log           logger.Logger
}

// Options configures a fetch service.
type Options struct {
	Client        headlines.Client
	Categories    []string
	CategoryDelay time.Duration
	HasAPIKey     bool
	Log           logger.Logger
}

// NewService wires a fetch service from options.
func NewService(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		client:        opts.Client,
		categories:    opts.Categories,
		categoryDelay: opts.CategoryDelay,
		hasAPIKey:     opts.HasAPIKey,
		log:           log,
	}
}

// Fetch returns up to limit articles. Without an API key it returns the mock
// set immediately with no network call. With a key it issues one request per
// category; any transport failure aborts the whole pass and substitutes the
// mock set, never a partial result.
func (s *Service) Fetch(ctx context.Context, limit int) domain.FetchResult {
	if limit <= 0 {
		if !s.hasAPIKey {
			return domain.Mock(nil)
		}
		return domain.Live(nil)
	}

	if !s.hasAPIKey {
		s.log.WarnObj("news api key not configured; using mock data mode", "article_limit", limit)
		return domain.Mock(truncate(headlines.MockArticles(), limit))
	}

	articles, err := s.fetchLive(ctx, limit)
	if err != nil {
		s.log.ErrorObj("headline fetch failed; substituting mock data", "error", err.Error())
		return domain.Mock(truncate(headlines.MockArticles(), limit))
	}
	return domain.Live(truncate(articles, limit))
}

// fetchLive walks the category list sequentially with a fixed inter-request
// delay to respect upstream rate limits.
func (s *Service) fetchLive(ctx context.Context, limit int) ([]domain.Article, error) {
	pageSize := limit / len(s.categories)
	if pageSize < 1 {
		pageSize = 1
	}

	var articles []domain.Article
	for i, category := range s.categories {
		batch, err := s.client.TopHeadlines(ctx, category, pageSize)
		if err != nil {
			return nil, err
		}
		articles = append(articles, batch...)

		s.log.DebugObj("category headlines fetched", "category_result", map[string]any{
			"category": category,
			"count":    len(batch),
		})

		if s.categoryDelay > 0 && i < len(s.categories)-1 {
			timer := time.NewTimer(s.categoryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return articles, nil
}

func truncate(articles []domain.Article, limit int) []domain.Article {
	if limit >= 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
