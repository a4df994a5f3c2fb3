// Package relevance is the keyword gate every source adapter runs fetched
// items through before they enter the pipeline.
package relevance

import (
	"regexp"
	"sync"
)

var (
	mu       sync.RWMutex
	compiled = map[string]*regexp.Regexp{}
)

// patternFor compiles (and caches) a whole-word, case-insensitive pattern for
// one configured term. The term list is fixed per run but matched against
// every fetched item, so caching matters.
func patternFor(term string) *regexp.Regexp {
	mu.RLock()
	re, ok := compiled[term]
	mu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)

	mu.Lock()
	compiled[term] = re
	mu.Unlock()
	return re
}

// Matches returns the subset of configured terms that occur as whole words in
// text, case-insensitively, preserving the configured term order. An empty
// result means the text is out of domain and the caller must discard it.
// Word-boundary matching keeps short terms like "EV" from firing inside
// unrelated tokens.
func Matches(text string, terms []string) []string {
	matched := make([]string, 0, 4)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if patternFor(term).MatchString(text) {
			matched = append(matched, term)
		}
	}
	return matched
}
