package analyze

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/ratelimit"
)

type fakeBackend struct {
	name  string
	resp  string
	err   error
	calls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.resp, f.err
}

func sampleArticles(n int) []article.Article {
	var out []article.Article
	for i := 0; i < n; i++ {
		out = append(out, article.Article{
			Title:   fmt.Sprintf("Story %d", i),
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Summary: fmt.Sprintf("Summary of story %d with enough words to look like a real article snippet.", i),
			Source:  "example.com",
		})
	}
	return out
}

func TestLocalStrategyNeverCallsNetworkAndReturnsTopThree(t *testing.T) {
	a := New(nil, nil)

	got := a.Analyze(context.Background(), sampleArticles(5))
	require.Len(t, got.TopArticles, 3)
	for i, ranked := range got.TopArticles {
		assert.Equal(t, i+1, ranked.Rank)
		assert.GreaterOrEqual(t, ranked.OriginalIndex, 0)
		assert.Less(t, ranked.OriginalIndex, 5)
		assert.NotEmpty(t, ranked.WhyNotable)
		assert.NotEmpty(t, ranked.KeyPoints)
	}
	assert.NotEmpty(t, got.OverallTrend)
}

func TestLocalStrategyMinOfThreeAndLen(t *testing.T) {
	a := New(nil, nil)
	got := a.Analyze(context.Background(), sampleArticles(2))
	assert.Len(t, got.TopArticles, 2)
}

func TestLocalStrategyRanksPositiveKeywords(t *testing.T) {
	articles := sampleArticles(3)
	articles[2].Summary = "A true breakthrough and another breakthrough plus real innovation in the field."

	got := New(nil, nil).Analyze(context.Background(), articles)
	require.NotEmpty(t, got.TopArticles)
	assert.Equal(t, 2, got.TopArticles[0].OriginalIndex)
}

func TestBackendFailureFallsBackSilently(t *testing.T) {
	backend := &fakeBackend{name: "gemini", err: errors.New("connection refused")}
	a := New([]TextBackend{backend}, nil)

	got := a.Analyze(context.Background(), sampleArticles(4))

	assert.Equal(t, 1, backend.calls)
	// Same shape as the local strategy: the caller cannot tell a backend
	// ever failed.
	require.Len(t, got.TopArticles, 3)
	assert.NotEmpty(t, got.OverallTrend)
}

func TestBackendResponseParsedAndClamped(t *testing.T) {
	backend := &fakeBackend{name: "gemini", resp: "Here you go:\n```json\n" + `{
		"topArticles": [
			{"rank": 1, "originalIndex": 99, "title": "hallucinated", "summary": "x", "whyNotable": "n/a", "keyPoints": []},
			{"rank": 2, "originalIndex": 1, "title": "", "summary": "", "whyNotable": "solid pick", "keyPoints": ["a"]}
		],
		"overallTrend": "models keep growing"
	}` + "\n```"}
	a := New([]TextBackend{backend}, nil)
	articles := sampleArticles(3)

	got := a.Analyze(context.Background(), articles)

	require.Len(t, got.TopArticles, 1, "out-of-range index must be dropped")
	top := got.TopArticles[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 1, top.OriginalIndex)
	// Empty fields are backfilled from the referenced article.
	assert.Equal(t, articles[1].Title, top.Title)
	assert.Equal(t, articles[1].Summary, top.Summary)
	assert.Equal(t, "models keep growing", got.OverallTrend)
}

func TestBackendGarbageFallsBackToLocal(t *testing.T) {
	backend := &fakeBackend{name: "gemini", resp: "I cannot help with that."}
	a := New([]TextBackend{backend}, nil)

	got := a.Analyze(context.Background(), sampleArticles(4))
	assert.Len(t, got.TopArticles, 3)
}

func TestBackendChainFallsThroughInOrder(t *testing.T) {
	first := &fakeBackend{name: "gemini", err: errors.New("quota")}
	second := &fakeBackend{name: "openai", resp: `{"topArticles":[{"rank":1,"originalIndex":0,"title":"t","summary":"s","whyNotable":"w","keyPoints":["k"]}],"overallTrend":"trend"}`}
	a := New([]TextBackend{first, second}, nil)

	got := a.Analyze(context.Background(), sampleArticles(2))

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	require.Len(t, got.TopArticles, 1)
	assert.Equal(t, "trend", got.OverallTrend)
}

func TestBudgetExhaustionSkipsBackend(t *testing.T) {
	backend := &fakeBackend{name: "gemini", resp: `{"topArticles":[{"rank":1,"originalIndex":0,"title":"t","summary":"s","whyNotable":"w","keyPoints":["k"]}],"overallTrend":"trend"}`}
	budget := ratelimit.NewAIBudget(1, 0, 0)
	a := New([]TextBackend{backend}, budget)

	first := a.Analyze(context.Background(), sampleArticles(2))
	assert.Equal(t, "trend", first.OverallTrend)

	second := a.Analyze(context.Background(), sampleArticles(2))
	assert.Equal(t, 1, backend.calls, "budget must prevent a second call")
	assert.NotEqual(t, "trend", second.OverallTrend)
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	got := New(nil, nil).Analyze(context.Background(), nil)
	assert.Empty(t, got.TopArticles)
	assert.NotEmpty(t, got.OverallTrend)
}
