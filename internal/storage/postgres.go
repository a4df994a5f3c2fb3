// Package storage persists fetched articles and daily briefings in
// PostgreSQL. Both tables are upsert-only: articles keyed by url, daily
// briefings keyed by briefing_date.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/cleanecon/newsbrief/internal/article"
	"github.com/cleanecon/newsbrief/internal/briefing"
	"github.com/cleanecon/newsbrief/internal/logger"
)

type Store struct {
	db *sql.DB
}

// Open connects, verifies the connection, and creates tables if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	logger.Info("PostgreSQL connected and schema initialized")
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id SERIAL PRIMARY KEY,
		url TEXT UNIQUE NOT NULL,
		source VARCHAR(200),
		title TEXT,
		description TEXT,
		published_date TIMESTAMPTZ,
		keywords_matched TEXT[],
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
	CREATE INDEX IF NOT EXISTS idx_articles_published_date ON articles(published_date);

	CREATE TABLE IF NOT EXISTS daily_briefings (
		id SERIAL PRIMARY KEY,
		briefing_date DATE UNIQUE NOT NULL,
		title TEXT,
		summary_text TEXT,
		key_developments TEXT[],
		strategic_implications TEXT,
		suggested_reactions TEXT,
		related_article_urls TEXT[],
		raw_ai_response TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_daily_briefings_date ON daily_briefings(briefing_date);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %v", err)
	}
	return nil
}

// UpsertArticles writes records one by one so a single bad row does not
// roll back the batch. Returns the number of rows written.
func (s *Store) UpsertArticles(ctx context.Context, records []article.Candidate) (int, error) {
	query := `
	INSERT INTO articles (url, source, title, description, published_date, keywords_matched, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (url) DO UPDATE SET
		source = EXCLUDED.source,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		published_date = EXCLUDED.published_date,
		keywords_matched = EXCLUDED.keywords_matched,
		updated_at = NOW()`

	stored := 0
	var lastErr error
	for _, rec := range records {
		published := sql.NullTime{Time: rec.PublishedAt(), Valid: !rec.PublishedAt().IsZero()}
		_, err := s.db.ExecContext(ctx, query,
			rec.URL, rec.Source, rec.Title, rec.Description, published, pq.Array(rec.MatchedTerms))
		if err != nil {
			logger.Error("Failed to upsert article", "url", rec.URL, "error", err)
			lastErr = err
			continue
		}
		stored++
	}

	if stored == 0 && lastErr != nil {
		return 0, fmt.Errorf("failed to upsert any articles: %v", lastErr)
	}
	return stored, nil
}

// UpsertBriefing replaces the row for the briefing's date.
func (s *Store) UpsertBriefing(ctx context.Context, b briefing.Briefing) error {
	query := `
	INSERT INTO daily_briefings
		(briefing_date, title, summary_text, key_developments, strategic_implications,
		 suggested_reactions, related_article_urls, raw_ai_response, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (briefing_date) DO UPDATE SET
		title = EXCLUDED.title,
		summary_text = EXCLUDED.summary_text,
		key_developments = EXCLUDED.key_developments,
		strategic_implications = EXCLUDED.strategic_implications,
		suggested_reactions = EXCLUDED.suggested_reactions,
		related_article_urls = EXCLUDED.related_article_urls,
		raw_ai_response = EXCLUDED.raw_ai_response,
		updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query,
		b.Date.Format("2006-01-02"), b.Title, b.SummaryText, pq.Array(b.KeyDevelopments),
		b.StrategicImplications, b.SuggestedReactions, pq.Array(b.RelatedArticleURLs), b.RawResponse)
	if err != nil {
		return fmt.Errorf("failed to upsert daily briefing: %v", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
