package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all tunables for one agent instance. It is built once by
// Default/Load and passed into the orchestrator; nothing here is mutated
// after startup.
type Config struct {
	// Search settings
	Keywords         []string
	Timeframe        string // "d" (past day), "w" (past week), "m" (past month)
	NewsAPIKey       string
	MaxArticles      int
	MinRelevance     float64
	PreferredSources []string
	ExcludedSources  []string
	FeedsConfigPath  string // optional RSS feed list (yaml)

	// AI backends
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	MaxAIRequests int // total generative calls per day (0 = unlimited)
	AITemperature float32
	AITopP        float32
	AIMaxTokens   int32

	// Post settings
	MaxPostLength     int
	OptimalPostLength int
	MaxHashtags       int

	// Network settings
	RequestTimeout time.Duration
	RateLimitDelay time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Scraper settings
	ScrapeConcurrency int
	ScrapeMaxArticles int

	// Cache settings
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Seen store
	SeenStorePath string
	SeenStoreKind string // "file" or "sqlite"

	// Delivery (optional)
	TelegramToken  string
	TelegramChatID string

	// App settings
	Debug       bool
	HTTPPort    string
	RunSchedule string // cron expression, empty = no scheduled runs
}

// Default returns the configuration the agent runs with when nothing is set.
// Every value here is documented behavior, not an accident.
func Default() *Config {
	return &Config{
		Keywords: []string{
			"artificial intelligence",
			"machine learning",
			"AI breakthrough",
			"OpenAI",
			"generative AI",
		},
		Timeframe:    "d",
		MaxArticles:  10,
		MinRelevance: 0.3,
		PreferredSources: []string{
			"techcrunch", "theverge", "wired", "arstechnica", "venturebeat", "mit.edu",
		},
		ExcludedSources: []string{
			"pinterest", "facebook", "instagram", "tiktok",
		},

		GeminiModel:   "gemini-1.5-flash",
		OpenAIModel:   "gpt-4o-mini",
		MaxAIRequests: 50,
		AITemperature: 0.7,
		AITopP:        0.9,
		AIMaxTokens:   1024,

		MaxPostLength:     3000,
		OptimalPostLength: 1300,
		MaxHashtags:       5,

		RequestTimeout: 15 * time.Second,
		RateLimitDelay: 1 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     2 * time.Second,

		ScrapeConcurrency: 4,
		ScrapeMaxArticles: 5,

		CacheTTL:        30 * time.Minute,
		CacheMaxEntries: 50,

		SeenStorePath: "seen_articles.json",
		SeenStoreKind: "file",

		HTTPPort: "8080",
	}
}

// Load builds a Config from defaults overridden by environment variables.
func Load() (*Config, error) {
	cfg := Default()

	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	if kw := os.Getenv("SEARCH_KEYWORDS"); kw != "" {
		if keywords := splitList(kw); len(keywords) > 0 {
			cfg.Keywords = keywords
		}
	}

	if tf := os.Getenv("SEARCH_TIMEFRAME"); tf != "" {
		cfg.Timeframe = tf
	}
	if v := os.Getenv("PREFERRED_SOURCES"); v != "" {
		cfg.PreferredSources = splitList(v)
	}
	if v := os.Getenv("EXCLUDED_SOURCES"); v != "" {
		cfg.ExcludedSources = splitList(v)
	}

	cfg.FeedsConfigPath = os.Getenv("FEEDS_CONFIG_PATH")
	cfg.SeenStorePath = getEnvOrDefault("SEEN_STORE_PATH", cfg.SeenStorePath)
	cfg.SeenStoreKind = getEnvOrDefault("SEEN_STORE_KIND", cfg.SeenStoreKind)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.HTTPPort = getEnvOrDefault("PORT", cfg.HTTPPort)
	cfg.RunSchedule = os.Getenv("RUN_SCHEDULE")

	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.MaxAIRequests = getEnvIntOrDefault("MAX_AI_REQUESTS", cfg.MaxAIRequests)
	cfg.MaxPostLength = getEnvIntOrDefault("MAX_POST_LENGTH", cfg.MaxPostLength)
	cfg.MaxHashtags = getEnvIntOrDefault("MAX_HASHTAGS", cfg.MaxHashtags)
	cfg.ScrapeConcurrency = getEnvIntOrDefault("SCRAPE_CONCURRENCY", cfg.ScrapeConcurrency)
	cfg.ScrapeMaxArticles = getEnvIntOrDefault("SCRAPE_MAX_ARTICLES", cfg.ScrapeMaxArticles)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.CacheMaxEntries = getEnvIntOrDefault("CACHE_MAX_ENTRIES", cfg.CacheMaxEntries)

	if v := os.Getenv("MIN_RELEVANCE_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.MinRelevance = f
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("RATE_LIMIT_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RateLimitDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTL = time.Duration(n) * time.Minute
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks constraints that would make a run misbehave.
// AI keys are optional by design: without them the local analyzer runs.
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one search keyword is required")
	}
	switch c.Timeframe {
	case "d", "w", "m":
	default:
		return fmt.Errorf("SEARCH_TIMEFRAME must be 'd', 'w' or 'm', got %q", c.Timeframe)
	}
	if c.SeenStoreKind != "file" && c.SeenStoreKind != "sqlite" {
		return fmt.Errorf("SEEN_STORE_KIND must be 'file' or 'sqlite', got %q", c.SeenStoreKind)
	}
	if c.MaxPostLength < 200 {
		return fmt.Errorf("MAX_POST_LENGTH too small: %d", c.MaxPostLength)
	}
	if c.MinRelevance < 0 || c.MinRelevance > 1 {
		return fmt.Errorf("MIN_RELEVANCE_SCORE must be within [0,1], got %v", c.MinRelevance)
	}
	return nil
}
