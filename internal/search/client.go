package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/cache"
	"github.com/aipulse/ainews/internal/logger"
	"github.com/aipulse/ainews/internal/metrics"
	"github.com/aipulse/ainews/internal/retry"
)

// ErrNoResults means every keyword and the widened timeframe came back
// empty. It is the only search error the orchestrator treats as terminal.
var ErrNoResults = errors.New("no articles found")

// Client fans one keyword list out over all configured providers, paces
// requests per provider, normalizes the merged hits and widens the
// timeframe once when the first pass finds nothing.
type Client struct {
	providers  []RawSearchProvider
	limiters   map[string]*rate.Limiter
	normalizer *article.Normalizer
	results    *cache.Cache
	keywords   []string
	timeframe  string
	retryCfg   retry.Config
}

type Options struct {
	Providers      []RawSearchProvider
	Normalizer     *article.Normalizer
	Keywords       []string
	Timeframe      string
	RateLimitDelay time.Duration
	ResultCache    *cache.Cache
	RetryAttempts  int
	RetryDelay     time.Duration
}

func NewClient(opts Options) *Client {
	limiters := make(map[string]*rate.Limiter, len(opts.Providers))
	for _, p := range opts.Providers {
		limit := rate.Inf
		if opts.RateLimitDelay > 0 {
			limit = rate.Every(opts.RateLimitDelay)
		}
		limiters[p.Name()] = rate.NewLimiter(limit, 1)
	}

	attempts := opts.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		providers:  opts.Providers,
		limiters:   limiters,
		normalizer: opts.Normalizer,
		results:    opts.ResultCache,
		keywords:   opts.Keywords,
		timeframe:  opts.Timeframe,
		retryCfg:   retry.Config{MaxAttempts: attempts, Delay: opts.RetryDelay, Backoff: true},
	}
}

// Discover runs the whole search stage and returns normalized, ranked
// articles. On a completely empty first pass the timeframe is widened once;
// if live search still yields nothing, cached results for the same query are
// served before giving up with ErrNoResults.
func (c *Client) Discover(ctx context.Context) ([]article.Article, error) {
	articles := c.searchOnce(ctx, c.timeframe)

	if len(articles) == 0 {
		widened := WidenTimeframe(c.timeframe)
		if widened != c.timeframe {
			logger.Info("no articles in narrow window, widening timeframe",
				"from", c.timeframe, "to", widened)
			articles = c.searchOnce(ctx, widened)
		}
	}

	if len(articles) == 0 {
		if cached, ok := c.cachedResults(); ok {
			logger.Warn("live search empty, serving cached results", "count", len(cached))
			metrics.Global.IncrementSearchCacheHits()
			return cached, nil
		}
		return nil, ErrNoResults
	}

	if c.results != nil {
		c.results.Set(c.cacheKey(), articles)
	}
	return articles, nil
}

// searchOnce issues one request per keyword per provider. A failure for one
// keyword is logged and counted as zero results; the batch continues.
func (c *Client) searchOnce(ctx context.Context, timeframe string) []article.Article {
	var allHits []article.RawHit

	for _, provider := range c.providers {
		limiter := c.limiters[provider.Name()]

		for _, keyword := range c.keywords {
			if err := limiter.Wait(ctx); err != nil {
				logger.Warn("rate limiter interrupted", "provider", provider.Name(), "error", err)
				return c.normalize(allHits)
			}

			var hits []article.RawHit
			err := retry.Do(ctx, c.retryCfg, func() error {
				var searchErr error
				hits, searchErr = provider.Search(ctx, keyword, timeframe)
				return searchErr
			})
			if err != nil {
				logger.Warn("search failed, skipping keyword",
					"provider", provider.Name(), "keyword", keyword, "error", err)
				continue
			}

			logger.Debug("search ok",
				"provider", provider.Name(), "keyword", keyword, "hits", len(hits))
			allHits = append(allHits, hits...)
		}
	}

	return c.normalize(allHits)
}

func (c *Client) normalize(hits []article.RawHit) []article.Article {
	if len(hits) == 0 {
		return nil
	}
	return c.normalizer.Normalize(hits)
}

func (c *Client) cacheKey() string {
	return fmt.Sprintf("search|%s|%s", strings.Join(c.keywords, ","), c.timeframe)
}

func (c *Client) cachedResults() ([]article.Article, bool) {
	if c.results == nil {
		return nil, false
	}
	v, ok := c.results.Get(c.cacheKey())
	if !ok {
		return nil, false
	}
	articles, ok := v.([]article.Article)
	return articles, ok && len(articles) > 0
}
