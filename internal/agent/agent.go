// Package agent wires search, filtering, analysis and synthesis into one
// run and owns all retry/fallback/error-wrapping policy.
package agent

import (
	"context"
	"time"

	"github.com/aipulse/ainews/internal/analyze"
	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/logger"
	"github.com/aipulse/ainews/internal/metrics"
	"github.com/aipulse/ainews/internal/post"
	"github.com/aipulse/ainews/internal/scraper"
	"github.com/aipulse/ainews/internal/seen"
)

// Stage names, logged on every transition.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageSearching    Stage = "searching"
	StageFiltering    Stage = "filtering"
	StageAnalyzing    Stage = "analyzing"
	StageSynthesizing Stage = "synthesizing"
	StagePersisting   Stage = "persisting"
	StageDone         Stage = "done"
)

// Searcher produces the normalized candidate batch.
type Searcher interface {
	Discover(ctx context.Context) ([]article.Article, error)
}

// Analyzer ranks a batch. It must not return an error: backend failures
// resolve to the local strategy inside.
type Analyzer interface {
	Analyze(ctx context.Context, articles []article.Article) analyze.Analysis
}

// Synthesizer turns an analysis into posts.
type Synthesizer interface {
	SynthesizeAll(ctx context.Context, analysis analyze.Analysis, articles []article.Article) ([]post.Post, error)
}

// Enricher optionally swaps short snippets for scraped article bodies.
type Enricher interface {
	ExtractArticles(urls []string) map[string]*scraper.ArticleContent
}

// Agent is the orchestrator. One run at a time per instance; the seen store
// is only mutated in the persisting stage.
type Agent struct {
	searcher    Searcher
	analyzer    Analyzer
	synthesizer Synthesizer
	store       seen.Store
	enricher    Enricher
	enrichMax   int
}

func New(searcher Searcher, analyzer Analyzer, synthesizer Synthesizer, store seen.Store) *Agent {
	return &Agent{
		searcher:    searcher,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		store:       store,
	}
}

// WithEnricher enables full-article extraction for the top max articles
// before analysis.
func (a *Agent) WithEnricher(e Enricher, max int) *Agent {
	a.enricher = e
	a.enrichMax = max
	return a
}

// Generate runs the full pipeline. It never returns a Go error; every
// failure mode is encoded in the Result.
func (a *Agent) Generate(ctx context.Context) Result {
	start := time.Now()
	metrics.Global.IncrementRuns()

	finish := func(r Result) Result {
		r.RuntimeMs = time.Since(start).Milliseconds()
		metrics.Global.RecordRunDuration(time.Since(start))
		if r.Success {
			metrics.Global.SetLastRun()
		} else {
			metrics.Global.SetError(r.Error)
		}
		return r
	}

	a.logStage(StageSearching)
	articles, err := a.searcher.Discover(ctx)
	if err != nil || len(articles) == 0 {
		logger.Warn("search produced nothing", "error", err)
		return finish(Result{Success: false, Error: "no articles found"})
	}

	a.logStage(StageFiltering)
	articles = a.dropSeen(articles)
	if len(articles) == 0 {
		return finish(Result{Success: false, Error: "no new articles found"})
	}
	metrics.Global.AddArticlesKept(len(articles))

	if a.enricher != nil {
		a.enrich(articles)
	}

	a.logStage(StageAnalyzing)
	analysis := a.analyzer.Analyze(ctx, articles)

	a.logStage(StageSynthesizing)
	posts, err := a.synthesizer.SynthesizeAll(ctx, analysis, articles)
	if err != nil {
		// Articles go back to the caller, but nothing is marked seen: a
		// transient synthesis failure must stay retryable.
		logger.Error("synthesis failed, returning partial result", "error", err)
		return finish(Result{
			Success:  false,
			Partial:  true,
			Articles: articles,
			Analysis: &analysis,
			Error:    err.Error(),
		})
	}

	a.logStage(StagePersisting)
	a.persistSeen(articles)

	a.logStage(StageDone)
	return finish(Result{
		Success:  true,
		Articles: articles,
		Posts:    posts,
		Analysis: &analysis,
		Summary:  summarize(articles, posts),
	})
}

// RegeneratePost re-runs synthesis over a previously produced batch. No
// search, no seen mutation; calling it twice changes nothing but the text.
func (a *Agent) RegeneratePost(ctx context.Context, articles []article.Article, overallTrend string) RegenResult {
	if len(articles) == 0 {
		return RegenResult{Success: false, Error: "no articles to regenerate from"}
	}

	analysis := analyze.Analysis{OverallTrend: overallTrend}
	n := 3
	if len(articles) < n {
		n = len(articles)
	}
	for i := 0; i < n; i++ {
		analysis.TopArticles = append(analysis.TopArticles, analyze.RankedArticle{
			Rank:          i + 1,
			Title:         articles[i].Title,
			Summary:       articles[i].Summary,
			WhyNotable:    overallTrend,
			OriginalIndex: i,
		})
	}

	posts, err := a.synthesizer.SynthesizeAll(ctx, analysis, articles)
	if err != nil {
		return RegenResult{Success: false, Error: err.Error()}
	}
	return RegenResult{Success: true, LinkedInPost: posts[0].Content}
}

func (a *Agent) dropSeen(articles []article.Article) []article.Article {
	if a.store == nil {
		return articles
	}

	kept := articles[:0]
	for _, art := range articles {
		if a.store.Contains(art.URL) {
			logger.Debug("skipping already-seen article", "url", art.URL)
			metrics.Global.IncrementSeenFiltered()
			continue
		}
		kept = append(kept, art)
	}
	return kept
}

func (a *Agent) enrich(articles []article.Article) {
	max := a.enrichMax
	if max <= 0 || max > len(articles) {
		max = len(articles)
	}

	urls := make([]string, 0, max)
	for i := 0; i < max; i++ {
		urls = append(urls, articles[i].URL)
	}

	extracted := a.enricher.ExtractArticles(urls)
	for i := 0; i < max; i++ {
		if full, ok := extracted[articles[i].URL]; ok && len(full.Content) > len(articles[i].Summary) {
			articles[i].Summary = full.Content
			logger.Debug("enriched article with full content",
				"url", articles[i].URL, "length", len(full.Content))
		}
	}
}

// persistSeen is the last observable side effect of a successful run. A
// flush failure is logged and swallowed.
func (a *Agent) persistSeen(articles []article.Article) {
	if a.store == nil {
		return
	}

	urls := make([]string, 0, len(articles))
	for _, art := range articles {
		urls = append(urls, art.URL)
	}

	if err := a.store.Add(urls...); err != nil {
		logger.Error("failed to record seen articles", "error", err)
		return
	}
	if err := a.store.Save(); err != nil {
		logger.Error("failed to flush seen store", "error", err)
	}
}

func (a *Agent) logStage(s Stage) {
	logger.Debug("pipeline stage", "stage", string(s))
}
