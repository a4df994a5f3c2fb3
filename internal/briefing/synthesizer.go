package briefing

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cleanecon/newsbrief/internal/article"
	"github.com/cleanecon/newsbrief/internal/generate"
	"github.com/cleanecon/newsbrief/internal/logger"
)

const persona = "You are a senior political analyst for 'New Economy Canada'. " +
	"Your raison d’etre is to ramp up awareness of and support for solutions " +
	"and good things happening in the clean economy. " +
	"You communicate the urgency for Canada to act now to remain relevant in the global economy. " +
	"You are trying to accelerate the clean energy transition and make Canada a leader in this transition. " +
	"You always look for concrete policy actions, investment trends, and potential challenges or 'greenwashing'. "

const taskInstruction = "Based on the following news articles, generate a 'Morning Briefing' for today. " +
	"Your output should be structured to help 'New Economy Canada' monitor, observe, and react to news, " +
	"and understand the narrative being shaped. " +
	"Prioritize quality and focus. Here's the structure I need:\n\n" +
	"**Briefing Title:** AI Morning Briefing - [Today's Date]\n\n" +
	"**Executive Summary:** A concise overview of the most critical developments (2-3 sentences).\n\n" +
	"**Key Developments:**\n" +
	"- [Bullet point 1: Major news item, e.g., 'Government announces X funding for Y project']\n" +
	"- [Bullet point 2: Key policy shift, e.g., 'New provincial legislation on Z']\n" +
	"- [Bullet point 3: Industry trends or notable investments, e.g., 'Company A invests in B technology']\n" +
	"- ... (up to 5 bullet points)\n\n" +
	"**Strategic Implications for New Economy Canada:** (Analyze potential impacts, what to watch for, narrative shaping elements)\n" +
	"- [Implication 1]\n" +
	"- [Implication 2]\n\n" +
	"**Suggested Reactions:** (Based on the news, recommend positive or concerned tones)\n" +
	"- **Positive:** [If supportive public policy, funding, etc., suggest an action/stance]\n" +
	"- **Concerned:** [If harmful public policy, 'greenwashing', etc., suggest an action/stance]\n\n" +
	"**Relevant Article URLs:**\n" +
	"- [Link 1: Brief description]\n" +
	"- [Link 2: Brief description]\n" +
	"- ...\n\n" +
	"Here are the articles for your analysis (focus on titles and descriptions):\n\n"

// Synthesizer builds the analysis prompt and runs it through a generator.
type Synthesizer struct {
	gen           generate.Generator
	contentBudget int
}

func NewSynthesizer(gen generate.Generator, contentBudget int) *Synthesizer {
	return &Synthesizer{gen: gen, contentBudget: contentBudget}
}

// BuildPrompt renders the articles into the persona+task prompt. Scraped
// full text is included when present, truncated to the per-article budget.
func (s *Synthesizer) BuildPrompt(records []article.Candidate) string {
	var blocks []string
	for i, rec := range records {
		body := fmt.Sprintf("Title: %s\nDescription: %s\nURL: %s", rec.Title, rec.Description, rec.URL)
		if rec.FullContent != "" {
			body += "\nFull Text: " + truncateContent(rec.FullContent, s.contentBudget)
		}
		blocks = append(blocks, fmt.Sprintf("--- Article %d ---\n%s\n", i+1, body))
	}
	return persona + "\n\n" + taskInstruction + strings.Join(blocks, "\n")
}

// Synthesize runs generation and returns the raw model output.
func (s *Synthesizer) Synthesize(ctx context.Context, records []article.Candidate) (string, error) {
	if s.gen == nil {
		return "", ErrNotConfigured
	}
	if len(records) == 0 {
		return "", ErrNoArticles
	}

	prompt := s.BuildPrompt(records)
	logger.Debug("Sending articles for analysis", "backend", s.gen.Name(), "articles", len(records))

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("briefing generation: %w", err)
	}
	return raw, nil
}

// truncateContent cuts on a rune boundary, then backs up to the last
// sentence end when one exists past the halfway mark.
func truncateContent(content string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(content) <= maxChars {
		return content
	}
	runes := []rune(content)
	trimmed := string(runes[:maxChars])
	if idx := strings.LastIndex(trimmed, ". "); idx > maxChars/2 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed + "\n[TRUNCATED]"
}
