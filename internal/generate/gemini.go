package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/cleanecon/newsbrief/internal/logger"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Gemini generates briefings through the Google Generative AI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a client and resolves the model to use from the
// ordered preference list, checking what the API account actually offers
// instead of hardcoding a name that may be retired.
func NewGemini(ctx context.Context, apiKey string, preferred []string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := resolveModel(ctx, client, preferred)
	return &Gemini{client: client, model: model}, nil
}

func resolveModel(ctx context.Context, client *genai.Client, preferred []string) string {
	available := map[string]bool{}
	it := client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Warn("Model listing failed, using preference order blindly", "error", err)
			break
		}
		for _, action := range info.SupportedGenerationMethods {
			if action == "generateContent" {
				available[strings.TrimPrefix(info.Name, "models/")] = true
				break
			}
		}
	}

	for _, name := range preferred {
		if available[name] {
			return name
		}
	}
	if len(available) > 0 {
		logger.Warn("No preferred model available", "preferred", strings.Join(preferred, ","))
	}
	if len(preferred) > 0 {
		return preferred[0]
	}
	return defaultGeminiModel
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return out.String(), nil
}

func (g *Gemini) Name() string { return "gemini/" + g.model }

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
