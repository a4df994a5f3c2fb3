// Package app wires the fetch, dedup, enrich, synthesize, and persist
// stages into one pipeline run.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleanecon/newsbrief/internal/article"
	"github.com/cleanecon/newsbrief/internal/briefing"
	"github.com/cleanecon/newsbrief/internal/config"
	"github.com/cleanecon/newsbrief/internal/feed"
	"github.com/cleanecon/newsbrief/internal/generate"
	"github.com/cleanecon/newsbrief/internal/logger"
	"github.com/cleanecon/newsbrief/internal/metrics"
	"github.com/cleanecon/newsbrief/internal/newsapi"
	"github.com/cleanecon/newsbrief/internal/notify"
	"github.com/cleanecon/newsbrief/internal/scraper"
	"github.com/cleanecon/newsbrief/internal/storage"
)

// Pipeline stage interfaces, sized for what Run needs and nothing more.
type FeedSource interface {
	FetchAll(ctx context.Context, sources []config.FeedSource) []article.Candidate
}

type SearchSource interface {
	Fetch(ctx context.Context, q newsapi.Query, terms []string) []article.Candidate
}

type Enricher interface {
	Enrich(ctx context.Context, records []article.Candidate) []article.Candidate
}

type Store interface {
	UpsertArticles(ctx context.Context, records []article.Candidate) (int, error)
	UpsertBriefing(ctx context.Context, b briefing.Briefing) error
}

type Notifier interface {
	SendBriefing(ctx context.Context, b briefing.Briefing) error
}

// Pipeline runs one end-to-end news cycle.
type Pipeline struct {
	cfg      *config.Config
	sources  *config.Sources
	feeds    FeedSource
	search   SearchSource
	enricher Enricher
	synth    *briefing.Synthesizer
	store    Store
	notifier Notifier // optional
	now      func() time.Time
}

func NewPipeline(cfg *config.Config, sources *config.Sources, feeds FeedSource, search SearchSource,
	enricher Enricher, synth *briefing.Synthesizer, store Store, notifier Notifier) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		sources:  sources,
		feeds:    feeds,
		search:   search,
		enricher: enricher,
		synth:    synth,
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run executes one full cycle and returns a human-readable status line.
// Article persistence and briefing persistence fail independently: a
// storage error on one never blocks the other.
func (p *Pipeline) Run(ctx context.Context) string {
	runID := strings.Split(uuid.NewString(), "-")[0]
	started := p.now()
	today := started

	logger.Info("Starting news briefing run", "run_id", runID)

	fromFeeds := p.feeds.FetchAll(ctx, p.sources.Feeds)
	fromSearch := p.search.Fetch(ctx, newsapi.Query{
		Query:    p.sources.NewsAPI.Query,
		Language: p.sources.NewsAPI.Language,
		DaysBack: p.cfg.NewsAPIDaysBack,
		PageSize: p.cfg.NewsAPIPageSize,
	}, p.sources.Keywords)

	fetched := len(fromFeeds) + len(fromSearch)
	merged := article.Merge(fromFeeds, fromSearch)
	duplicates := fetched - len(merged)

	metrics.Global.AddArticlesFetched(fetched)
	metrics.Global.AddDuplicatesRemoved(duplicates)
	logger.Info("Articles collected", "run_id", runID, "fetched", fetched, "unique", len(merged))

	stored := 0
	if len(merged) > 0 {
		var err error
		stored, err = p.store.UpsertArticles(ctx, merged)
		if err != nil {
			logger.Error("Failed to store articles", "run_id", runID, "error", err)
			metrics.Global.SetError(err)
		}
		metrics.Global.AddArticlesStored(stored)
	}

	selected := article.SelectForAnalysis(merged, p.cfg.MaxAnalysisArticles)
	selected = p.enricher.Enrich(ctx, selected)
	relatedURLs := article.URLs(selected)

	b := p.synthesizeBriefing(ctx, today, selected, relatedURLs, article.URLs(merged))

	briefingStatus := "Daily briefing stored successfully."
	if err := p.store.UpsertBriefing(ctx, b); err != nil {
		logger.Error("Failed to store briefing", "run_id", runID, "error", err)
		metrics.Global.SetError(err)
		briefingStatus = fmt.Sprintf("Error storing daily briefing: %v", err)
	} else {
		metrics.Global.AddBriefingStored()
	}

	if p.notifier != nil {
		if err := p.notifier.SendBriefing(ctx, b); err != nil {
			logger.Warn("Briefing notification failed", "run_id", runID, "error", err)
		}
	}

	status := fmt.Sprintf("Run completed. Articles: %d, Briefing: %s", stored, briefingStatus)
	metrics.Global.SetRunResult(runID, status, p.now().Sub(started), metrics.Global.Healthy())
	logger.Info("Run finished", "run_id", runID, "duration", p.now().Sub(started).String())
	return status
}

// synthesizeBriefing always returns something storable: a parsed briefing
// on success, an explanatory placeholder otherwise.
func (p *Pipeline) synthesizeBriefing(ctx context.Context, today time.Time,
	selected []article.Candidate, relatedURLs, allURLs []string) briefing.Briefing {

	raw, err := p.synth.Synthesize(ctx, selected)
	switch {
	case err == nil:
		return briefing.Parse(raw, relatedURLs, today)
	case err == briefing.ErrNotConfigured:
		logger.Warn("No generation backend configured, skipping analysis")
		return briefing.SkippedBriefing(today,
			"AI model could not be initialized, likely due to API key issues or model unavailability. Please check backend logs.",
			allURLs)
	case err == briefing.ErrNoArticles:
		logger.Info("No articles matched, storing empty-day briefing")
		return briefing.SkippedBriefing(today, "No relevant articles were found today.", allURLs)
	default:
		logger.Error("Briefing generation failed", "error", err)
		metrics.Global.AddGenerationFailure()
		raw := fmt.Sprintf("Error: %v\nPrompt: %s", err, head(p.synth.BuildPrompt(selected), 2000))
		return briefing.ErrorBriefing(today, err, relatedURLs, raw)
	}
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Run wires the concrete components from configuration and executes one
// pipeline cycle.
func Run(ctx context.Context, cfg *config.Config) (string, error) {
	sources, err := config.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return "", fmt.Errorf("load sources: %w", err)
	}

	store, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	gen := generate.Resolve(ctx, cfg.GeminiAPIKey, cfg.OpenAIAPIKey, cfg.GenerationModels)
	if closer, ok := gen.(generate.Closer); ok {
		defer closer.Close()
	}

	var fetcher scraper.Fetcher
	if cfg.ScrapingBeeAPIKey != "" {
		fetcher = scraper.NewScrapingBee(cfg.ScrapingBeeAPIKey, cfg.RequestTimeout)
	} else {
		fetcher = scraper.NewDirect(cfg.RequestTimeout)
	}

	var notifier Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		notifier = notify.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, cfg.RequestTimeout)
	}

	pipeline := NewPipeline(
		cfg,
		sources,
		feed.NewFetcher(sources.Keywords, cfg.RequestTimeout),
		newsapi.NewClient(cfg.NewsAPIKey, cfg.RequestTimeout),
		scraper.NewEnricher(fetcher, cfg.MaxScrapeCalls, cfg.ScrapeConcurrency),
		briefing.NewSynthesizer(gen, cfg.ContentCharBudget),
		store,
		notifier,
	)
	return pipeline.Run(ctx), nil
}
