package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cleanecon/newsbrief/internal/config"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Business Feed</title>
    <item>
      <title>Province announces hydrogen hub funding</title>
      <link>https://example.com/hydrogen-hub</link>
      <description>New funding supports a hydrogen production hub.</description>
      <pubDate>Thu, 27 Aug 2026 09:15:00 -0400</pubDate>
    </item>
    <item>
      <title>Local bakery wins pastry award</title>
      <link>https://example.com/bakery</link>
      <description>Croissants judged best in the region.</description>
      <pubDate>Thu, 27 Aug 2026 08:00:00 -0400</pubDate>
    </item>
    <item>
      <title>Grid operator expands battery storage</title>
      <link>https://example.com/storage</link>
      <pubDate>Thu, 27 Aug 2026 07:00:00 -0400</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchAllFiltersAndMaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	f := NewFetcher([]string{"hydrogen", "battery storage"}, 5*time.Second)
	records := f.FetchAll(context.Background(), []config.FeedSource{{Name: "Test Feed", URL: srv.URL}})

	if len(records) != 2 {
		t.Fatalf("expected 2 matching records, got %d: %+v", len(records), records)
	}

	first := records[0]
	if first.Source != "Test Feed" {
		t.Errorf("source = %q, want Test Feed", first.Source)
	}
	if first.URL != "https://example.com/hydrogen-hub" {
		t.Errorf("url = %q", first.URL)
	}
	if len(first.MatchedTerms) != 1 || first.MatchedTerms[0] != "hydrogen" {
		t.Errorf("matched terms = %v", first.MatchedTerms)
	}
	if first.PublishedRaw == "" {
		t.Error("published raw date should be carried through")
	}

	// Item without a description gets the placeholder, not an empty string.
	second := records[1]
	if second.Description != placeholderDescription {
		t.Errorf("missing description should map to placeholder, got %q", second.Description)
	}
}

func TestFetchAllSurvivesFailingSource(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	f := NewFetcher([]string{"hydrogen"}, 5*time.Second)
	records := f.FetchAll(context.Background(), []config.FeedSource{
		{Name: "Broken Feed", URL: bad.URL},
		{Name: "Good Feed", URL: good.URL},
	})

	if len(records) != 1 {
		t.Fatalf("failing source must not abort the run; got %d records", len(records))
	}
	if records[0].Source != "Good Feed" {
		t.Errorf("surviving record source = %q", records[0].Source)
	}
}
