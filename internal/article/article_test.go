package article

import (
	"testing"
)

func TestMergeDeduplicatesByURLLastWins(t *testing.T) {
	feedList := []Candidate{
		{Source: "Feed A", Title: "Old title", URL: "https://example.com/story", Description: "short", MatchedTerms: []string{"hydrogen"}},
	}
	apiList := []Candidate{
		{Source: "News API", Title: "Newer title", URL: "https://example.com/story", Description: "much richer description", MatchedTerms: []string{"hydrogen"}},
	}

	merged := Merge(feedList, apiList)
	if len(merged) != 1 {
		t.Fatalf("expected 1 record after dedup, got %d", len(merged))
	}
	if merged[0].Title != "Newer title" || merged[0].Description != "much richer description" {
		t.Errorf("later record should win the URL conflict, got %+v", merged[0])
	}
}

func TestMergeSortsMostRecentFirstSentinelLast(t *testing.T) {
	records := []Candidate{
		{URL: "u3", PublishedRaw: "definitely not a date", MatchedTerms: []string{"x"}},
		{URL: "u2", PublishedRaw: "Wed, 26 Aug 2026 08:00:00 GMT", MatchedTerms: []string{"x"}},
		{URL: "u1", PublishedRaw: "Thu, 27 Aug 2026 08:00:00 GMT", MatchedTerms: []string{"x"}},
	}

	merged := Merge(records)
	wantOrder := []string{"u1", "u2", "u3"}
	for i, want := range wantOrder {
		if merged[i].URL != want {
			t.Fatalf("position %d: got %s, want %s (full order %+v)", i, merged[i].URL, want, merged)
		}
	}
}

func TestMergeStableForEqualTimestamps(t *testing.T) {
	// Two unparseable dates share the sentinel; encounter order must hold.
	records := []Candidate{
		{URL: "first", PublishedRaw: "", MatchedTerms: []string{"x"}},
		{URL: "second", PublishedRaw: "", MatchedTerms: []string{"x"}},
	}
	merged := Merge(records)
	if merged[0].URL != "first" || merged[1].URL != "second" {
		t.Errorf("stable sort broke tie ordering: %+v", merged)
	}
}

func TestMergeAcrossListsKeepsFirstEncounterPosition(t *testing.T) {
	// The duplicate keeps its original slot but carries the later data.
	a := []Candidate{
		{URL: "dup", Title: "from feed", PublishedRaw: "", MatchedTerms: []string{"x"}},
		{URL: "other", Title: "other", PublishedRaw: "", MatchedTerms: []string{"x"}},
	}
	b := []Candidate{
		{URL: "dup", Title: "from api", PublishedRaw: "", MatchedTerms: []string{"x"}},
	}
	merged := Merge(a, b)
	if len(merged) != 2 {
		t.Fatalf("expected 2 records, got %d", len(merged))
	}
	if merged[0].URL != "dup" || merged[0].Title != "from api" {
		t.Errorf("duplicate should stay in first slot with later data, got %+v", merged)
	}
}

func TestSelectForAnalysisBounds(t *testing.T) {
	records := []Candidate{{URL: "a"}, {URL: "b"}, {URL: "c"}}

	if got := SelectForAnalysis(records, 2); len(got) != 2 || got[1].URL != "b" {
		t.Errorf("SelectForAnalysis(2) = %+v", got)
	}
	if got := SelectForAnalysis(records, 10); len(got) != 3 {
		t.Errorf("limit beyond length should return all records, got %d", len(got))
	}
	if got := SelectForAnalysis(records, -1); len(got) != 0 {
		t.Errorf("negative limit should return nothing, got %d", len(got))
	}
}

func TestURLs(t *testing.T) {
	records := []Candidate{{URL: "a"}, {URL: "b"}}
	got := URLs(records)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("URLs = %v", got)
	}
}
