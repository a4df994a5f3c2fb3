package briefing

import (
	"regexp"
	"strings"
	"time"
)

// Section labels as the prompt asks for them. Models drift on punctuation
// and on the "Strategic Implications" heading suffix, so the patterns are
// deliberately forgiving: optional colons inside or outside the bold
// markers, arbitrary suffix after "Strategic Implications".
var labelPatterns = []struct {
	name  string
	regex *regexp.Regexp
}{
	{"title", regexp.MustCompile(`(?i)^\*\*\s*Briefing Title\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{"summary", regexp.MustCompile(`(?i)^\*\*\s*Executive Summary\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{"developments", regexp.MustCompile(`(?i)^\*\*\s*Key Developments\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{"implications", regexp.MustCompile(`(?i)^\*\*\s*Strategic Implications[^:*]*:?\s*\*\*\s*:?\s*(.*)$`)},
	{"reactions", regexp.MustCompile(`(?i)^\*\*\s*Suggested Reactions\s*:?\s*\*\*\s*:?\s*(.*)$`)},
	{"urls", regexp.MustCompile(`(?i)^\*\*\s*Relevant Article URLs\s*:?\s*\*\*\s*:?\s*(.*)$`)},
}

var (
	bulletLine        = regexp.MustCompile(`^-\s+(.+)$`)
	bracketResidue    = regexp.MustCompile(`\[.*\]`)
	parentheticalHint = regexp.MustCompile(`^\(.*\)$`)
)

// Parse walks the model output line by line, accumulating text into the
// current section. Missing sections leave their field at the default; the
// related URLs always come from the pipeline, not from the model's output.
func Parse(raw string, relatedURLs []string, today time.Time) Briefing {
	b := Briefing{
		Date:               today,
		KeyDevelopments:    []string{},
		RelatedArticleURLs: relatedURLs,
		RawResponse:        raw,
	}

	var summary, implications, reactions []string
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched := false
		for _, lp := range labelPatterns {
			m := lp.regex.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current = lp.name
			if rest := strings.TrimSpace(m[1]); rest != "" {
				appendSection(&b, &summary, &implications, &reactions, current, rest)
			}
			matched = true
			break
		}
		if matched {
			continue
		}

		if current != "" {
			appendSection(&b, &summary, &implications, &reactions, current, line)
		}
	}

	b.SummaryText = strings.TrimSpace(strings.Join(summary, "\n"))
	b.StrategicImplications = strings.TrimSpace(strings.Join(implications, "\n"))
	b.SuggestedReactions = strings.TrimSpace(strings.Join(reactions, "\n"))
	b.Title = normalizeTitle(b.Title, today)
	return b
}

func appendSection(b *Briefing, summary, implications, reactions *[]string, section, text string) {
	switch section {
	case "title":
		if b.Title == "" {
			b.Title = text
		}
	case "summary":
		*summary = append(*summary, text)
	case "developments":
		if m := bulletLine.FindStringSubmatch(text); m != nil {
			b.KeyDevelopments = append(b.KeyDevelopments, strings.TrimSpace(m[1]))
		}
	case "implications":
		if !parentheticalHint.MatchString(text) {
			*implications = append(*implications, text)
		}
	case "reactions":
		if !parentheticalHint.MatchString(text) {
			*reactions = append(*reactions, text)
		}
	case "urls":
		// Terminator only: model-listed links are ignored in favor of
		// the URLs the pipeline actually analyzed.
	}
}

// normalizeTitle replaces an empty title or one where the model echoed the
// template placeholder instead of filling in the date.
func normalizeTitle(title string, today time.Time) string {
	fallback := "AI Morning Briefing - " + today.Format("2006-01-02")
	if title == "" {
		return fallback
	}
	lower := strings.ToLower(title)
	if strings.Contains(lower, "[today's date]") || strings.Contains(lower, "today's date") ||
		strings.Contains(lower, "today’s date") || bracketResidue.MatchString(title) {
		return fallback
	}
	return title
}
