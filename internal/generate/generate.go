// Package generate abstracts the text-generation backends used for
// briefing synthesis. Gemini is preferred; OpenAI serves as fallback
// when no Gemini key is configured or the client cannot be created.
package generate

import (
	"context"

	"github.com/cleanecon/newsbrief/internal/logger"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Closer is implemented by generators holding a connection.
type Closer interface {
	Close()
}

// Resolve picks the best available generator. Returns nil when no
// backend is configured; callers must treat that as analysis-skipped.
func Resolve(ctx context.Context, geminiKey, openaiKey string, models []string) Generator {
	if geminiKey != "" {
		gen, err := NewGemini(ctx, geminiKey, models)
		if err == nil {
			logger.Info("Using Gemini for briefing synthesis", "model", gen.model)
			return gen
		}
		logger.Warn("Gemini client unavailable", "error", err)
	}

	if openaiKey != "" {
		gen := NewOpenAI(openaiKey)
		logger.Info("Using OpenAI for briefing synthesis", "model", gen.model)
		return gen
	}

	return nil
}
