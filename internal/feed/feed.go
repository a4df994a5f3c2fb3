// Package feed is the RSS source adapter.
package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/cleanecon/newsbrief/internal/article"
	"github.com/cleanecon/newsbrief/internal/config"
	"github.com/cleanecon/newsbrief/internal/logger"
	"github.com/cleanecon/newsbrief/internal/metrics"
	"github.com/cleanecon/newsbrief/internal/relevance"
)

// Placeholder values for absent feed fields; downstream code never sees an
// empty title or description.
const (
	placeholderTitle       = "No Title"
	placeholderLink        = "#"
	placeholderDescription = "No summary available."
)

// Fetcher reads the configured RSS feeds and emits relevance-filtered
// candidate records.
type Fetcher struct {
	parser *gofeed.Parser
	terms  []string
}

func NewFetcher(terms []string, timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &Fetcher{parser: parser, terms: terms}
}

// FetchAll downloads and filters every configured feed. A single feed outage
// is logged and skipped; it must never abort the run.
func (f *Fetcher) FetchAll(ctx context.Context, sources []config.FeedSource) []article.Candidate {
	var all []article.Candidate
	successCount := 0

	for _, src := range sources {
		records, err := f.fetchOne(ctx, src)
		if err != nil {
			logger.Error("rss fetch failed", "source", src.Name, "url", src.URL, "error", err)
			metrics.Global.AddSourceFailure()
			continue
		}
		all = append(all, records...)
		successCount++
		logger.Info("rss feed loaded", "source", src.Name, "matched", len(records))
	}

	logger.Info("rss fetch complete", "ok", successCount, "total", len(sources), "matched", len(all))
	return all
}

func (f *Fetcher) fetchOne(ctx context.Context, src config.FeedSource) ([]article.Candidate, error) {
	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, err
	}

	var records []article.Candidate
	for _, item := range parsed.Items {
		title := item.Title
		if title == "" {
			title = placeholderTitle
		}
		link := item.Link
		if link == "" {
			link = placeholderLink
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		if summary == "" {
			summary = placeholderDescription
		}

		matched := relevance.Matches(title+" "+summary, f.terms)
		if len(matched) == 0 {
			continue
		}

		records = append(records, article.Candidate{
			Source:       src.Name,
			Title:        title,
			URL:          link,
			Description:  summary,
			PublishedRaw: item.Published,
			MatchedTerms: matched,
		})
	}

	return records, nil
}
