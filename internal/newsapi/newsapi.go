// Package newsapi is the search-API source adapter, backed by the NewsAPI
// "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cleanecon/newsbrief/internal/article"
	"github.com/cleanecon/newsbrief/internal/logger"
	"github.com/cleanecon/newsbrief/internal/metrics"
	"github.com/cleanecon/newsbrief/internal/relevance"
)

const defaultEndpoint = "https://newsapi.org/v2/everything"

const (
	placeholderTitle       = "No Title"
	placeholderLink        = "#"
	placeholderDescription = "No description available."
	fallbackSourceName     = "News API"
)

// Query describes one search-API call.
type Query struct {
	Query    string
	DaysBack int
	Language string
	PageSize int
}

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Fetch runs the configured search and returns relevance-filtered candidate
// records. Any failure (missing key, transport error, non-ok status) yields
// an empty result and a log line; the search API is a supplementary source
// and must never abort the run.
func (c *Client) Fetch(ctx context.Context, q Query, terms []string) []article.Candidate {
	if c.apiKey == "" {
		logger.Info("NEWS_API_KEY not set, skipping News API fetch")
		return nil
	}

	records, err := c.fetch(ctx, q, terms)
	if err != nil {
		logger.Error("news api fetch failed", "error", err)
		metrics.Global.AddSourceFailure()
		return nil
	}

	logger.Info("news api fetch complete", "matched", len(records))
	return records
}

func (c *Client) fetch(ctx context.Context, q Query, terms []string) ([]article.Candidate, error) {
	end := c.now()
	start := end.AddDate(0, 0, -q.DaysBack)

	// The API is asked for the broad query AND any configured keyword; the
	// local relevance filter still runs so matched_terms is recorded
	// uniformly across sources.
	fullQuery := fmt.Sprintf("(%s) AND (%s)", q.Query, strings.Join(terms, " OR "))

	params := url.Values{}
	params.Set("q", fullQuery)
	params.Set("language", q.Language)
	params.Set("from", start.Format(time.RFC3339))
	params.Set("to", end.Format(time.RFC3339))
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news api request: %w", err)
	}
	defer resp.Body.Close()

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news api response: %w", err)
	}

	if payload.Status != "ok" {
		msg := payload.Message
		if msg == "" {
			msg = fmt.Sprintf("http status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("news api error: %s", msg)
	}

	var records []article.Candidate
	for _, a := range payload.Articles {
		title := a.Title
		if title == "" {
			title = placeholderTitle
		}
		link := a.URL
		if link == "" {
			link = placeholderLink
		}
		description := a.Description
		if description == "" {
			description = placeholderDescription
		}
		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = fallbackSourceName
		}

		matched := relevance.Matches(title+" "+description, terms)
		if len(matched) == 0 {
			continue
		}

		records = append(records, article.Candidate{
			Source:       sourceName,
			Title:        title,
			URL:          link,
			Description:  description,
			PublishedRaw: a.PublishedAt,
			MatchedTerms: matched,
		})
	}

	return records, nil
}

type apiResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
}

type apiSource struct {
	Name string `json:"name"`
}
