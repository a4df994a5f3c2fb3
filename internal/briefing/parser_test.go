package briefing

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var testDay = time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

const wellFormed = `**Briefing Title:** AI Morning Briefing - 2026-03-12

**Executive Summary:** Ottawa expanded EV rebates while two provinces
announced new grid storage funding.

**Key Developments:**
- Federal EV rebate program extended through 2027
- Ontario commits $500M to battery storage
- Critics flag greenwashing in a pipeline operator's net-zero plan

**Strategic Implications for New Economy Canada:**
- Rebate extension creates a window for supportive messaging
- Storage funding validates the grid modernization narrative

**Suggested Reactions:**
- **Positive:** Amplify the rebate extension announcement
- **Concerned:** Challenge the net-zero plan's accounting

**Relevant Article URLs:**
- https://model.example/made-this-up
`

func TestParseWellFormed(t *testing.T) {
	urls := []string{"https://news.example/a", "https://news.example/b"}
	b := Parse(wellFormed, urls, testDay)

	if b.Title != "AI Morning Briefing - 2026-03-12" {
		t.Errorf("title = %q", b.Title)
	}
	if !strings.Contains(b.SummaryText, "Ottawa expanded EV rebates") ||
		!strings.Contains(b.SummaryText, "grid storage funding") {
		t.Errorf("summary lost continuation lines: %q", b.SummaryText)
	}
	want := []string{
		"Federal EV rebate program extended through 2027",
		"Ontario commits $500M to battery storage",
		"Critics flag greenwashing in a pipeline operator's net-zero plan",
	}
	if !reflect.DeepEqual(b.KeyDevelopments, want) {
		t.Errorf("developments = %v", b.KeyDevelopments)
	}
	if !strings.Contains(b.StrategicImplications, "window for supportive messaging") {
		t.Errorf("implications = %q", b.StrategicImplications)
	}
	if !strings.Contains(b.SuggestedReactions, "Amplify the rebate extension") {
		t.Errorf("reactions = %q", b.SuggestedReactions)
	}
	if !reflect.DeepEqual(b.RelatedArticleURLs, urls) {
		t.Errorf("related URLs must come from the pipeline, got %v", b.RelatedArticleURLs)
	}
	if strings.Contains(strings.Join(b.RelatedArticleURLs, " "), "made-this-up") {
		t.Error("model-invented URL leaked into related URLs")
	}
	if b.RawResponse != wellFormed {
		t.Error("raw response not preserved")
	}
}

func TestParseMissingSectionsKeepDefaults(t *testing.T) {
	b := Parse("**Executive Summary:** Only a summary today.", nil, testDay)

	if b.Title != "AI Morning Briefing - 2026-03-12" {
		t.Errorf("default title = %q", b.Title)
	}
	if b.SummaryText != "Only a summary today." {
		t.Errorf("summary = %q", b.SummaryText)
	}
	if len(b.KeyDevelopments) != 0 {
		t.Errorf("developments should stay empty, got %v", b.KeyDevelopments)
	}
	if b.StrategicImplications != "" || b.SuggestedReactions != "" {
		t.Error("missing sections should stay empty")
	}
}

func TestParsePlaceholderTitleReplaced(t *testing.T) {
	cases := []string{
		"**Briefing Title:** AI Morning Briefing - [Today's Date]",
		"**Briefing Title:** AI Morning Briefing - [2026-03-12]",
		"**Briefing Title:**",
	}
	for _, raw := range cases {
		b := Parse(raw, nil, testDay)
		if b.Title != "AI Morning Briefing - 2026-03-12" {
			t.Errorf("Parse(%q).Title = %q", raw, b.Title)
		}
	}
}

func TestParseToleratesHeadingDrift(t *testing.T) {
	raw := "**Briefing Title**: Drift Day\n" +
		"**Strategic Implications:**\n" +
		"- Watch the committee vote\n"
	b := Parse(raw, nil, testDay)

	if b.Title != "Drift Day" {
		t.Errorf("title = %q", b.Title)
	}
	if !strings.Contains(b.StrategicImplications, "Watch the committee vote") {
		t.Errorf("shortened implications heading not recognized: %q", b.StrategicImplications)
	}
}

func TestParseCaseInsensitiveHeadings(t *testing.T) {
	b := Parse("**key developments:**\n- lowered heading still counts", nil, testDay)
	if len(b.KeyDevelopments) != 1 || b.KeyDevelopments[0] != "lowered heading still counts" {
		t.Errorf("developments = %v", b.KeyDevelopments)
	}
}

func TestErrorBriefingShape(t *testing.T) {
	urls := []string{"https://news.example/a"}
	b := ErrorBriefing(testDay, errTest, urls, "raw")

	if b.Title != "AI Briefing Error - 2026-03-12" {
		t.Errorf("title = %q", b.Title)
	}
	if !strings.Contains(b.SummaryText, "Error during AI analysis: test failure") {
		t.Errorf("summary = %q", b.SummaryText)
	}
	if b.StrategicImplications != "Could not perform full analysis due to AI error." {
		t.Errorf("implications = %q", b.StrategicImplications)
	}
	if b.SuggestedReactions != "Monitor AI service status." {
		t.Errorf("reactions = %q", b.SuggestedReactions)
	}
	if !reflect.DeepEqual(b.RelatedArticleURLs, urls) {
		t.Errorf("related URLs = %v", b.RelatedArticleURLs)
	}
}

func TestSkippedBriefingShape(t *testing.T) {
	b := SkippedBriefing(testDay, "no backend", nil)
	if b.StrategicImplications != "AI analysis skipped." {
		t.Errorf("implications = %q", b.StrategicImplications)
	}
	if b.Title != "AI Briefing Initialization Error - 2026-03-12" {
		t.Errorf("title = %q", b.Title)
	}
}
