// Package briefing turns a day's selected articles into a structured
// morning briefing via a text-generation backend, and parses the model's
// labeled-section output back into fields.
package briefing

import (
	"errors"
	"fmt"
	"time"
)

// Briefing is one day's synthesized briefing, keyed by Date in storage.
type Briefing struct {
	Date                  time.Time
	Title                 string
	SummaryText           string
	KeyDevelopments       []string
	StrategicImplications string
	SuggestedReactions    string
	RelatedArticleURLs    []string
	RawResponse           string
}

var (
	// ErrNotConfigured means no generation backend is available.
	ErrNotConfigured = errors.New("no generation backend configured")
	// ErrNoArticles means there was nothing to analyze.
	ErrNoArticles = errors.New("no articles to analyze")
)

// ErrorBriefing is stored when generation or parsing fails mid-run, so the
// day still has a row explaining what happened.
func ErrorBriefing(today time.Time, genErr error, relatedURLs []string, rawResponse string) Briefing {
	return Briefing{
		Date:                  today,
		Title:                 "AI Briefing Error - " + today.Format("2006-01-02"),
		SummaryText:           fmt.Sprintf("Error during AI analysis: %v. Raw AI response might be incomplete or empty.", genErr),
		KeyDevelopments:       []string{},
		StrategicImplications: "Could not perform full analysis due to AI error.",
		SuggestedReactions:    "Monitor AI service status.",
		RelatedArticleURLs:    relatedURLs,
		RawResponse:           rawResponse,
	}
}

// SkippedBriefing is stored when no backend was configured at all.
func SkippedBriefing(today time.Time, reason string, relatedURLs []string) Briefing {
	return Briefing{
		Date:                  today,
		Title:                 "AI Briefing Initialization Error - " + today.Format("2006-01-02"),
		SummaryText:           reason,
		KeyDevelopments:       []string{},
		StrategicImplications: "AI analysis skipped.",
		SuggestedReactions:    "Check AI API key and model availability.",
		RelatedArticleURLs:    relatedURLs,
		RawResponse:           "Model initialization failed.",
	}
}
