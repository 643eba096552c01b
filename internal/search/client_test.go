package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/cache"
)

const usableSummary = "The lab announced a breakthrough in machine learning research with major new funding and an artificial intelligence partnership spanning three continents."

type scriptedProvider struct {
	name     string
	searches []searchCall
	// hitsFor maps timeframe -> hits; keywords resolving to an error are
	// listed in failKeywords.
	hitsFor      map[string][]article.RawHit
	failKeywords map[string]bool
}

type searchCall struct {
	keyword   string
	timeframe string
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) Search(ctx context.Context, keyword, timeframe string) ([]article.RawHit, error) {
	p.searches = append(p.searches, searchCall{keyword: keyword, timeframe: timeframe})
	if p.failKeywords[keyword] {
		return nil, errors.New("simulated provider outage")
	}
	return p.hitsFor[timeframe], nil
}

func testOptions(p RawSearchProvider, keywords []string) Options {
	return Options{
		Providers: []RawSearchProvider{p},
		Normalizer: &article.Normalizer{
			Keywords:     keywords,
			MinRelevance: 0.3,
			MaxArticles:  10,
		},
		Keywords:      keywords,
		Timeframe:     "d",
		RetryAttempts: 1,
	}
}

func TestDiscoverReturnsNormalizedArticles(t *testing.T) {
	p := &scriptedProvider{
		name: "fake",
		hitsFor: map[string][]article.RawHit{
			"d": {{Title: "ML breakthrough announced today", Snippet: usableSummary, URL: "https://example.com/1"}},
		},
	}

	c := NewClient(testOptions(p, []string{"artificial intelligence"}))
	got, err := c.Discover(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/1", got[0].URL)
}

func TestDiscoverWidensTimeframeOnEmptyFirstPass(t *testing.T) {
	p := &scriptedProvider{
		name: "fake",
		hitsFor: map[string][]article.RawHit{
			"w": {{Title: "Weekly ML story announced", Snippet: usableSummary, URL: "https://example.com/w"}},
		},
	}

	c := NewClient(testOptions(p, []string{"artificial intelligence"}))
	got, err := c.Discover(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)

	// One pass at "d", then the widened pass at "w".
	require.Len(t, p.searches, 2)
	assert.Equal(t, "d", p.searches[0].timeframe)
	assert.Equal(t, "w", p.searches[1].timeframe)
}

func TestDiscoverKeywordFailureIsSoft(t *testing.T) {
	p := &scriptedProvider{
		name: "fake",
		hitsFor: map[string][]article.RawHit{
			"d": {{Title: "Working keyword story announced", Snippet: usableSummary, URL: "https://example.com/ok"}},
		},
		failKeywords: map[string]bool{"broken keyword": true},
	}

	c := NewClient(testOptions(p, []string{"broken keyword", "artificial intelligence"}))
	got, err := c.Discover(context.Background())

	require.NoError(t, err, "one failing keyword must not abort the batch")
	assert.Len(t, got, 1)
}

func TestDiscoverNoResultsAfterWidening(t *testing.T) {
	p := &scriptedProvider{name: "fake"}

	c := NewClient(testOptions(p, []string{"artificial intelligence"}))
	_, err := c.Discover(context.Background())

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestDiscoverServesCacheWhenLiveSearchDies(t *testing.T) {
	p := &scriptedProvider{
		name: "fake",
		hitsFor: map[string][]article.RawHit{
			"d": {{Title: "Cached ML story announced", Snippet: usableSummary, URL: "https://example.com/cached"}},
		},
	}

	opts := testOptions(p, []string{"artificial intelligence"})
	opts.ResultCache = cache.New(time.Minute, 10)
	c := NewClient(opts)

	first, err := c.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Provider goes dark; the cached batch keeps the run alive.
	p.hitsFor = nil
	second, err := c.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first[0].URL, second[0].URL)
}

func TestWidenTimeframe(t *testing.T) {
	assert.Equal(t, "w", WidenTimeframe("d"))
	assert.Equal(t, "m", WidenTimeframe("w"))
	assert.Equal(t, "m", WidenTimeframe("m"))
}

func TestTimeframeCutoff(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(-24*time.Hour), TimeframeCutoff("d", now))
	assert.Equal(t, now.Add(-7*24*time.Hour), TimeframeCutoff("w", now))
	assert.Equal(t, now.Add(-30*24*time.Hour), TimeframeCutoff("m", now))
}
