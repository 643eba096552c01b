package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/logger"
	"github.com/aipulse/ainews/internal/metrics"
	"github.com/aipulse/ainews/internal/ratelimit"
)

// TextBackend is the generative-text capability. Backends only produce free
// text; all parsing and validation happens here.
type TextBackend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer ranks a batch of articles. Backends are tried in order; any
// failure (call, transport, parse, budget) falls through to the next one and
// finally to the local heuristic. Backend errors never reach the caller.
type Analyzer struct {
	backends []TextBackend
	budget   *ratelimit.AIBudget
}

func New(backends []TextBackend, budget *ratelimit.AIBudget) *Analyzer {
	return &Analyzer{backends: backends, budget: budget}
}

const topN = 3

// Analyze returns the ranked top articles. With no backends configured it
// never touches the network.
func (a *Analyzer) Analyze(ctx context.Context, articles []article.Article) Analysis {
	if len(articles) == 0 {
		return Analysis{OverallTrend: "No articles to analyze."}
	}

	for _, backend := range a.backends {
		if !a.allowed(backend.Name()) {
			continue
		}

		analysis, err := a.analyzeWithBackend(ctx, backend, articles)
		if err != nil {
			logger.Warn("backend analysis failed, trying next strategy",
				"backend", backend.Name(), "error", err)
			continue
		}

		logger.Info("analysis served by generative backend", "backend", backend.Name())
		metrics.Global.IncrementBackendAnalyses()
		return analysis
	}

	logger.Info("analysis served by local heuristic")
	metrics.Global.IncrementLocalAnalyses()
	return a.analyzeLocally(articles)
}

func (a *Analyzer) allowed(name string) bool {
	if a.budget == nil {
		return true
	}
	switch name {
	case "gemini":
		return a.budget.CanUseGemini()
	case "openai":
		return a.budget.CanUseOpenAI()
	}
	return true
}

func (a *Analyzer) consume(name string) error {
	if a.budget == nil {
		return nil
	}
	switch name {
	case "gemini":
		return a.budget.UseGemini()
	case "openai":
		return a.budget.UseOpenAI()
	}
	return nil
}

func (a *Analyzer) analyzeWithBackend(ctx context.Context, backend TextBackend, articles []article.Article) (Analysis, error) {
	if err := a.consume(backend.Name()); err != nil {
		return Analysis{}, err
	}

	raw, err := backend.Generate(ctx, buildRankingPrompt(articles))
	if err != nil {
		return Analysis{}, err
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return Analysis{}, err
	}

	// Reject or clamp whatever the model invented that does not reference
	// the input batch.
	valid := analysis.TopArticles[:0]
	for _, ranked := range analysis.TopArticles {
		if ranked.OriginalIndex < 0 || ranked.OriginalIndex >= len(articles) {
			logger.Warn("backend returned out-of-range article index, dropping entry",
				"index", ranked.OriginalIndex, "articles", len(articles))
			continue
		}
		src := articles[ranked.OriginalIndex]
		if ranked.Title == "" {
			ranked.Title = src.Title
		}
		if ranked.Summary == "" {
			ranked.Summary = src.Summary
		}
		valid = append(valid, ranked)
		if len(valid) >= topN {
			break
		}
	}
	if len(valid) == 0 {
		return Analysis{}, fmt.Errorf("backend response contained no usable articles")
	}

	for i := range valid {
		valid[i].Rank = i + 1
	}
	analysis.TopArticles = valid
	return analysis, nil
}

func buildRankingPrompt(articles []article.Article) string {
	var b strings.Builder
	b.WriteString("You are an AI news analyst. Rank the most newsworthy articles below.\n\n")
	b.WriteString("ARTICLES:\n")
	for i, a := range articles {
		fmt.Fprintf(&b, "[%d] %s\nSource: %s\nSummary: %s\n\n", i, a.Title, a.Source, a.Summary)
	}
	b.WriteString(`TASK:
Pick the top 3 articles and explain why each one matters.

Respond with ONLY this JSON, no other text:
{
  "topArticles": [
    {
      "rank": 1,
      "originalIndex": 0,
      "title": "...",
      "summary": "...",
      "whyNotable": "one sentence",
      "keyPoints": ["...", "..."]
    }
  ],
  "overallTrend": "one paragraph describing the batch"
}
`)
	return b.String()
}

// parseAnalysis extracts the JSON object from a model response that may wrap
// it in prose or code fences.
func parseAnalysis(raw string) (Analysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Analysis{}, fmt.Errorf("no JSON object in response")
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("parse analysis JSON: %w", err)
	}
	if len(analysis.TopArticles) == 0 {
		return Analysis{}, fmt.Errorf("analysis has no topArticles")
	}
	return analysis, nil
}

// Fixed positive keywords used by the local strategy.
var positiveKeywords = []string{
	"breakthrough",
	"innovation",
	"advancement",
	"progress",
	"success",
	"achievement",
	"improvement",
}

// analyzeLocally is the no-credential strategy: count positive keywords,
// take the top 3, attach template narrative since there is nothing to
// generate text with.
func (a *Analyzer) analyzeLocally(articles []article.Article) Analysis {
	type scored struct {
		index int
		score int
	}

	ranked := make([]scored, 0, len(articles))
	for i, art := range articles {
		text := strings.ToLower(art.Title + " " + art.Summary)
		score := 0
		for _, kw := range positiveKeywords {
			score += strings.Count(text, kw)
		}
		ranked = append(ranked, scored{index: i, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := topN
	if len(ranked) < n {
		n = len(ranked)
	}

	analysis := Analysis{
		OverallTrend: fmt.Sprintf(
			"AI continues to advance rapidly: %d notable stories were published recently, spanning research, product launches and industry moves.",
			len(articles)),
	}

	for rank := 0; rank < n; rank++ {
		src := articles[ranked[rank].index]
		analysis.TopArticles = append(analysis.TopArticles, RankedArticle{
			Rank:          rank + 1,
			Title:         src.Title,
			Summary:       src.Summary,
			WhyNotable:    "This development highlights meaningful progress in AI with practical implications for the industry.",
			KeyPoints:     []string{"Significant development in AI", "Practical real-world applications", "Signals where the field is heading"},
			OriginalIndex: ranked[rank].index,
		})
	}

	return analysis
}
