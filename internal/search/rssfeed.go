package search

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/htmltext"
	"github.com/aipulse/ainews/internal/logger"
)

// FeedsConfig is the YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// RSSProvider reads a fixed feed list and keeps only items whose text
// mentions the keyword. A broken feed is logged and skipped, not fatal.
type RSSProvider struct {
	FeedURLs []string
	Parser   *gofeed.Parser
}

func NewRSSProvider(feedURLs []string) *RSSProvider {
	return &RSSProvider{
		FeedURLs: feedURLs,
		Parser:   gofeed.NewParser(),
	}
}

func (p *RSSProvider) Name() string { return "rss" }

func (p *RSSProvider) Search(ctx context.Context, keyword, timeframe string) ([]article.RawHit, error) {
	cutoff := TimeframeCutoff(timeframe, time.Now())
	kw := strings.ToLower(keyword)

	var hits []article.RawHit
	for _, feedURL := range p.FeedURLs {
		feed, err := p.Parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logger.Warn("failed to parse RSS feed, skipping", "feed", feedURL, "error", err)
			continue
		}

		for _, item := range feed.Items {
			published := time.Time{}
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			if !published.IsZero() && published.Before(cutoff) {
				continue
			}

			text := strings.ToLower(item.Title + " " + item.Description)
			if !strings.Contains(text, kw) {
				continue
			}

			hits = append(hits, article.RawHit{
				Title:       htmltext.Strip(item.Title),
				Snippet:     htmltext.Strip(item.Description),
				URL:         item.Link,
				PublishedAt: published,
				Provider:    p.Name(),
			})
		}
	}
	return hits, nil
}
