// Package article holds the candidate-record model shared by every source
// adapter and the merge/dedup/ordering logic applied before persistence and
// analysis.
package article

import (
	"sort"
	"time"

	"github.com/cleanecon/newsbrief/internal/dates"
)

// Candidate is one article observed from any source, already past the
// relevance filter: MatchedTerms is never empty on an emitted record.
// FullContent is set only for the bounded subset the enrichment step manages
// to scrape.
type Candidate struct {
	Source       string
	Title        string
	Description  string
	URL          string
	PublishedRaw string
	MatchedTerms []string
	FullContent  string
}

// PublishedAt derives the comparable timestamp for ordering. Records with
// unparseable dates get the zero-time sentinel and end up last.
func (c Candidate) PublishedAt() time.Time {
	return dates.Normalize(c.PublishedRaw)
}

// Merge concatenates the adapters' candidate lists, deduplicates by URL and
// orders the result most recent first. When the same URL appears more than
// once the later-encountered record wins (later sources tend to carry richer
// descriptions) while the record keeps its first encounter position, so the
// stable sort breaks timestamp ties by original order.
func Merge(lists ...[]Candidate) []Candidate {
	index := make(map[string]int)
	var merged []Candidate

	for _, list := range lists {
		for _, c := range list {
			if i, seen := index[c.URL]; seen {
				merged[i] = c
				continue
			}
			index[c.URL] = len(merged)
			merged = append(merged, c)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt().After(merged[j].PublishedAt())
	})

	return merged
}

// SelectForAnalysis returns the leading records of an already recency-sorted
// list, at most limit of them. The analysis limit may legitimately exceed the
// enrichment limit; trailing records then simply lack FullContent.
func SelectForAnalysis(records []Candidate, limit int) []Candidate {
	if limit < 0 {
		limit = 0
	}
	if limit > len(records) {
		limit = len(records)
	}
	return records[:limit]
}

// URLs collects the record URLs in order.
func URLs(records []Candidate) []string {
	urls := make([]string, 0, len(records))
	for _, r := range records {
		urls = append(urls, r.URL)
	}
	return urls
}
