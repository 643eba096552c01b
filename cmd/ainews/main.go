package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aipulse/ainews/internal/agent"
	"github.com/aipulse/ainews/internal/analyze"
	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/cache"
	"github.com/aipulse/ainews/internal/config"
	"github.com/aipulse/ainews/internal/logger"
	"github.com/aipulse/ainews/internal/metrics"
	"github.com/aipulse/ainews/internal/post"
	"github.com/aipulse/ainews/internal/ratelimit"
	"github.com/aipulse/ainews/internal/scraper"
	"github.com/aipulse/ainews/internal/search"
	"github.com/aipulse/ainews/internal/seen"
	"github.com/aipulse/ainews/internal/telegram"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	app, cleanup, err := build(cfg)
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}
	defer cleanup()

	if os.Getenv("RUN_MODE") == "batch" {
		runOnce(cfg, app)
		return
	}

	if cfg.RunSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.RunSchedule, func() { runOnce(cfg, app) }); err != nil {
			log.Fatalf("Invalid RUN_SCHEDULE %q: %v", cfg.RunSchedule, err)
		}
		c.Start()
		defer c.Stop()
		logger.Info("scheduled runs enabled", "schedule", cfg.RunSchedule)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/metrics", metricsHandler)
	mux.HandleFunc("/api/generate-posts", generateHandler(app))
	mux.HandleFunc("/api/regenerate-post", regenerateHandler(app))
	mux.Handle("/", http.FileServer(http.Dir("web")))

	logger.Info("starting server", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// build assembles the pipeline from configuration. Missing AI keys are fine:
// the analyzer then runs on its local heuristic only.
func build(cfg *config.Config) (*agent.Agent, func(), error) {
	store, err := newSeenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Load(); err != nil {
		return nil, nil, err
	}

	var providers []search.RawSearchProvider
	if cfg.NewsAPIKey != "" {
		providers = append(providers, search.NewNewsAPIProvider(cfg.NewsAPIKey, cfg.RequestTimeout))
	}
	providers = append(providers, search.NewDuckDuckGoProvider(cfg.RequestTimeout))
	if cfg.FeedsConfigPath != "" {
		feeds, err := search.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			logger.Warn("could not load RSS feed list, skipping provider", "error", err)
		} else if len(feeds) > 0 {
			providers = append(providers, search.NewRSSProvider(feeds))
		}
	}

	normalizer := &article.Normalizer{
		Keywords:         cfg.Keywords,
		MinRelevance:     cfg.MinRelevance,
		MaxArticles:      cfg.MaxArticles,
		PreferredSources: cfg.PreferredSources,
		ExcludedSources:  cfg.ExcludedSources,
	}

	client := search.NewClient(search.Options{
		Providers:      providers,
		Normalizer:     normalizer,
		Keywords:       cfg.Keywords,
		Timeframe:      cfg.Timeframe,
		RateLimitDelay: cfg.RateLimitDelay,
		ResultCache:    cache.New(cfg.CacheTTL, cfg.CacheMaxEntries),
		RetryAttempts:  cfg.RetryAttempts,
		RetryDelay:     cfg.RetryDelay,
	})

	budget := ratelimit.NewAIBudget(0, 0, cfg.MaxAIRequests)

	var backends []analyze.TextBackend
	var gemini *analyze.GeminiBackend
	if cfg.GeminiAPIKey != "" {
		gemini, err = analyze.NewGeminiBackend(cfg.GeminiAPIKey, cfg.GeminiModel,
			cfg.AITemperature, cfg.AITopP, cfg.AIMaxTokens)
		if err != nil {
			logger.Warn("gemini backend unavailable", "error", err)
		} else {
			backends = append(backends, gemini)
		}
	}
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, analyze.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIModel,
			cfg.AITemperature, cfg.AITopP, int(cfg.AIMaxTokens)))
	}

	var postBackend analyze.TextBackend
	if len(backends) > 0 {
		postBackend = backends[0]
	}

	analyzer := analyze.New(backends, budget)
	synthesizer := post.NewSynthesizer(cfg.MaxPostLength, cfg.MaxHashtags, postBackend, nil)
	synthesizer.OptimalLength = cfg.OptimalPostLength

	app := agent.New(client, analyzer, synthesizer, store).
		WithEnricher(scraper.New(cfg.RequestTimeout, cfg.ScrapeConcurrency), cfg.ScrapeMaxArticles)

	cleanup := func() {
		if gemini != nil {
			gemini.Close()
		}
		if err := store.Close(); err != nil {
			logger.Warn("failed to close seen store", "error", err)
		}
	}
	return app, cleanup, nil
}

func newSeenStore(cfg *config.Config) (seen.Store, error) {
	if cfg.SeenStoreKind == "sqlite" {
		return seen.NewSQLiteStore(cfg.SeenStorePath)
	}
	return seen.NewFileStore(cfg.SeenStorePath), nil
}

func runOnce(cfg *config.Config, app *agent.Agent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result := app.Generate(ctx)
	if !result.Success {
		logger.Warn("run finished without posts", "error", result.Error, "partial", result.Partial)
		return
	}

	logger.Info("run finished",
		"articles", result.Summary.ArticleCount,
		"posts", result.Summary.PostCount,
		"runtime_ms", result.RuntimeMs)

	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" && len(result.Posts) > 0 {
		if err := telegram.SendMessage(cfg.TelegramToken, cfg.TelegramChatID, result.Posts[0].Content); err != nil {
			logger.Error("telegram delivery failed", "error", err)
		}
	}
}

func generateHandler(app *agent.Agent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		result := app.Generate(r.Context())
		writeJSON(w, result)
	}
}

type regenerateRequest struct {
	Articles     []article.Article `json:"articles"`
	OverallTrend string            `json:"overallTrend"`
}

func regenerateHandler(app *agent.Agent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req regenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, agent.RegenResult{Success: false, Error: "invalid request body"})
			return
		}

		writeJSON(w, app.RegeneratePost(r.Context(), req.Articles, req.OverallTrend))
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
