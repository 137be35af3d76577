package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"career-compass/internal/config"
)

var (
	// ErrDisabled is returned when no API key was configured.
	ErrDisabled = errors.New("llm: client disabled")
	// ErrBadPayload is returned when the model reply carries no usable JSON.
	ErrBadPayload = errors.New("llm: response is not valid JSON")
	// ErrTextTooShort is returned for inputs below the analyzable minimum.
	ErrTextTooShort = errors.New("llm: text too short to analyze")
)

// Gemini wraps the Google generative AI client. A zero API key puts the
// client in disabled mode: construction succeeds, every call returns
// ErrDisabled and callers fall back to local extraction.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg config.LLMConfig) (*Gemini, error) {
	g := &Gemini{model: cfg.GeminiModel}
	if cfg.GeminiAPIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// Available reports whether calls will reach the model.
func (g *Gemini) Available() bool {
	return g.client != nil
}

func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// generateJSON runs one prompt in JSON mode. Temperature stays low so
// repeated calls on the same input converge.
func (g *Gemini) generateJSON(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrDisabled
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return cleanJSONBlock(text), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock strips markdown code fences some models wrap around
// JSON replies even in JSON mode.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
