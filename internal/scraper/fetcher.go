package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxBodyBytes bounds how much HTML one page can push into memory.
const maxBodyBytes = 2 << 20

// Fetcher returns raw HTML for a URL, best effort.
type Fetcher interface {
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}

// ScrapingBee renders pages through the ScrapingBee API, which gets past
// most paywalled/JS-heavy news sites a plain GET cannot.
type ScrapingBee struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewScrapingBee(apiKey string, timeout time.Duration) *ScrapingBee {
	return &ScrapingBee{
		apiKey:     apiKey,
		endpoint:   "https://app.scrapingbee.com/api/v1",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *ScrapingBee) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("url", pageURL)
	params.Set("render_js", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrapingbee request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrapingbee status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read scrapingbee body: %w", err)
	}
	return string(body), nil
}

// Direct fetches pages with a plain HTTP GET, used when no rendering service
// is configured.
type Direct struct {
	httpClient *http.Client
}

func NewDirect(timeout time.Duration) *Direct {
	return &Direct{httpClient: &http.Client{Timeout: timeout}}
}

func (d *Direct) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "newsbrief/1.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}
	return string(body), nil
}
