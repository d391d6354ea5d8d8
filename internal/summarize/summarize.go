package summarize

import (
	"context"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/domain"
	"github.com/samvad-hq/samvad-news-digest/internal/logger"
	"github.com/samvad-hq/samvad-news-digest/pkg/llm"
)

// NoArticlesMessage is returned when a cycle produced no articles to summarize.
const NoArticlesMessage = "No news articles available at this time."

const systemPrompt = "You are a professional news editor who creates concise, informative news summaries."

// Summarizer condenses a cycle's articles into the digest text, delegating
// selection and ranking to the LLM and owning the deterministic fallback.
type Summarizer struct {
	chat        llm.ChatClient
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	now         func() time.Time
	log         logger.Logger
}

// Options configures a Summarizer.
type Options struct {
	Chat        llm.ChatClient
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
	Log         logger.Logger
}

// New builds a Summarizer from options.
func New(opts Options) *Summarizer {
	log := opts.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Summarizer{
		chat:        opts.Chat,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		now:         time.Now,
		log:         log,
	}
}

// Summarize produces the digest text for one cycle. An empty input returns
// the fixed no-articles message without touching the LLM. Any LLM failure
// degrades to the deterministic local rendering of the input articles.
func (s *Summarizer) Summarize(ctx context.Context, articles []domain.Article) string {
	if len(articles) == 0 {
		return NoArticlesMessage
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.chat.Complete(ctx, llm.ChatRequest{
		System:      systemPrompt,
		User:        BuildPrompt(articles, s.now()),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		s.log.ErrorObj("llm summary failed; using fallback summary", "error", err.Error())
		return FallbackSummary(articles, s.now())
	}
	return text
}
