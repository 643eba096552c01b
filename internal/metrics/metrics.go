package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns          int64
	ArticlesProcessed  int64
	ArticlesKept       int64
	DuplicatesFiltered int64
	SeenFiltered       int64
	BackendAnalyses    int64
	LocalAnalyses      int64
	PostsGenerated     int64
	SearchCacheHits    int64

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	AverageRunDuration time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRuns++
}

func (m *Metrics) IncrementArticlesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesProcessed++
}

func (m *Metrics) AddArticlesKept(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesKept += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementSeenFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeenFiltered++
}

func (m *Metrics) IncrementBackendAnalyses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackendAnalyses++
}

func (m *Metrics) IncrementLocalAnalyses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LocalAnalyses++
}

func (m *Metrics) AddPostsGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsGenerated += int64(n)
}

func (m *Metrics) IncrementSearchCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCacheHits++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_runs":              m.TotalRuns,
		"articles_processed":      m.ArticlesProcessed,
		"articles_kept":           m.ArticlesKept,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"seen_filtered":           m.SeenFiltered,
		"backend_analyses":        m.BackendAnalyses,
		"local_analyses":          m.LocalAnalyses,
		"posts_generated":         m.PostsGenerated,
		"search_cache_hits":       m.SearchCacheHits,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
