// Package config loads the run configuration from the environment and the
// source list from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Persistence (required; the run has no effect without it)
	DatabaseURL string

	// External service credentials, each independently optional.
	NewsAPIKey        string
	GeminiAPIKey      string
	OpenAIAPIKey      string
	ScrapingBeeAPIKey string
	TelegramToken     string
	TelegramChatID    string

	// Sources
	SourcesConfigPath string
	NewsAPIDaysBack   int
	NewsAPIPageSize   int

	// Bounding knobs protecting outbound quotas
	MaxScrapeCalls      int // full-content fetches per run
	MaxAnalysisArticles int // records handed to the generation service
	ScrapeConcurrency   int // parallel full-content fetches

	// Generation
	GenerationModels  []string // ordered model preference, resolved once at startup
	ContentCharBudget int      // per-record prompt budget for scraped content

	// App settings
	Debug          bool
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesConfigPath:   "configs/sources.yaml",
		NewsAPIDaysBack:     1,
		NewsAPIPageSize:     10,
		MaxScrapeCalls:      5,
		MaxAnalysisArticles: 10,
		ScrapeConcurrency:   4,
		GenerationModels:    []string{"gemini-1.5-pro", "gemini-1.5-flash"},
		ContentCharBudget:   1800,
		RequestTimeout:      30 * time.Second,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.ScrapingBeeAPIKey = os.Getenv("SCRAPINGBEE_API_KEY")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.NewsAPIDaysBack = getEnvIntOrDefault("NEWSAPI_DAYS_BACK", cfg.NewsAPIDaysBack)
	cfg.NewsAPIPageSize = getEnvIntOrDefault("NEWSAPI_PAGE_SIZE", cfg.NewsAPIPageSize)
	cfg.MaxScrapeCalls = getEnvIntOrDefault("MAX_SCRAPE_CALLS", cfg.MaxScrapeCalls)
	cfg.MaxAnalysisArticles = getEnvIntOrDefault("MAX_ANALYSIS_ARTICLES", cfg.MaxAnalysisArticles)
	cfg.ScrapeConcurrency = getEnvIntOrDefault("SCRAPE_CONCURRENCY", cfg.ScrapeConcurrency)
	cfg.ContentCharBudget = getEnvIntOrDefault("CONTENT_CHAR_BUDGET", cfg.ContentCharBudget)

	if models := os.Getenv("GENERATION_MODELS"); models != "" {
		cfg.GenerationModels = splitList(models)
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxScrapeCalls < 0 || c.MaxAnalysisArticles < 0 {
		return fmt.Errorf("scrape and analysis limits must not be negative")
	}
	if c.ScrapeConcurrency < 1 {
		return fmt.Errorf("SCRAPE_CONCURRENCY must be at least 1")
	}
	return nil
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

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
