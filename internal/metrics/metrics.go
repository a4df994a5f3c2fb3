// Package metrics keeps in-memory counters for the pipeline, exposed
// through the monitoring HTTP endpoints.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.Mutex

	ArticlesFetched    int
	ArticlesStored     int
	DuplicatesRemoved  int
	PagesEnriched      int
	ScrapeFailures     int
	SourceFailures     int
	GenerationFailures int
	BriefingsStored    int

	LastRunID       string
	LastRunTime     time.Time
	LastRunDuration time.Duration
	LastStatus      string
	LastError       string
	LastErrorTime   time.Time
	IsHealthy       bool
}

// Global is the process-wide instance. Healthy until a run says otherwise.
var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += n
}

func (m *Metrics) AddArticlesStored(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesStored += n
}

func (m *Metrics) AddDuplicatesRemoved(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesRemoved += n
}

func (m *Metrics) AddPageEnriched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesEnriched++
}

func (m *Metrics) AddScrapeFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScrapeFailures++
}

func (m *Metrics) AddSourceFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) AddGenerationFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationFailures++
}

func (m *Metrics) AddBriefingStored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BriefingsStored++
}

// SetRunResult records the outcome of one pipeline run.
func (m *Metrics) SetRunResult(runID, status string, duration time.Duration, healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunID = runID
	m.LastRunTime = time.Now()
	m.LastRunDuration = duration
	m.LastStatus = status
	m.IsHealthy = healthy
}

func (m *Metrics) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err.Error()
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IsHealthy
}

// GetStats returns a snapshot for JSON serialization.
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := map[string]interface{}{
		"articles_fetched":    m.ArticlesFetched,
		"articles_stored":     m.ArticlesStored,
		"duplicates_removed":  m.DuplicatesRemoved,
		"pages_enriched":      m.PagesEnriched,
		"scrape_failures":     m.ScrapeFailures,
		"source_failures":     m.SourceFailures,
		"generation_failures": m.GenerationFailures,
		"briefings_stored":    m.BriefingsStored,
		"is_healthy":          m.IsHealthy,
		"last_run_id":         m.LastRunID,
		"last_status":         m.LastStatus,
	}
	if !m.LastRunTime.IsZero() {
		stats["last_run_time"] = m.LastRunTime.Format(time.RFC3339)
		stats["last_run_duration"] = m.LastRunDuration.String()
	}
	if m.LastError != "" {
		stats["last_error"] = m.LastError
		stats["last_error_time"] = m.LastErrorTime.Format(time.RFC3339)
	}
	return stats
}
