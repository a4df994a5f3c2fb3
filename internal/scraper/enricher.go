package scraper

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cleanecon/newsbrief/internal/article"
	"github.com/cleanecon/newsbrief/internal/budget"
	"github.com/cleanecon/newsbrief/internal/logger"
	"github.com/cleanecon/newsbrief/internal/metrics"
	"github.com/cleanecon/newsbrief/internal/retry"
)

// Enricher fetches full page text for the top-ranked articles and attaches
// it as FullContent. Scrape calls are bounded by a per-run budget so a long
// candidate list cannot burn through the scraping quota.
type Enricher struct {
	fetcher     Fetcher
	limiter     *rate.Limiter
	budget      *budget.Counter
	concurrency int
}

func NewEnricher(fetcher Fetcher, maxCalls, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enricher{
		fetcher:     fetcher,
		limiter:     rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		budget:      budget.NewCounter("scraper", maxCalls),
		concurrency: concurrency,
	}
}

// Enrich returns a copy of records where the first budget-bounded entries
// carry scraped FullContent. Failures leave the record untouched; the
// briefing falls back to the feed description.
func (e *Enricher) Enrich(ctx context.Context, records []article.Candidate) []article.Candidate {
	out := make([]article.Candidate, len(records))
	copy(out, records)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e.enrichOne(ctx, &out[i])
			}
		}()
	}

	for i := range out {
		if e.budget.Use() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

func (e *Enricher) enrichOne(ctx context.Context, record *article.Candidate) {
	if record.URL == "" || record.URL == "#" {
		return
	}

	var html string
	err := retry.Do(ctx, retry.Config{MaxAttempts: 2, Delay: time.Second}, func() error {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
		var fetchErr error
		html, fetchErr = e.fetcher.FetchHTML(ctx, record.URL)
		return fetchErr
	})
	if err != nil {
		logger.Warn("Scrape failed", "url", record.URL, "error", err)
		metrics.Global.AddScrapeFailure()
		return
	}

	text := ExtractText(html)
	if text == "" {
		logger.Debug("No substantial content extracted", "url", record.URL)
		metrics.Global.AddScrapeFailure()
		return
	}

	record.FullContent = text
	metrics.Global.AddPageEnriched()
}
