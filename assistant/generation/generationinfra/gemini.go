package generationinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBackend uses the Google generative AI SDK
type GeminiBackend struct {
	client   *genai.Client
	defaults generation.Options
}

var _ generation.Backend = (*GeminiBackend)(nil)

func NewGeminiBackend(ctx context.Context, apiKey string, defaults generation.Options) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiBackend{
		client:   client,
		defaults: defaults,
	}, nil
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Complete(ctx context.Context, prompt string, opts generation.Options) (string, error) {
	opts = opts.Merge(b.defaults)

	model := b.client.GenerativeModel(opts.Model)
	if opts.Temperature > 0 {
		model.SetTemperature(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var out strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}
	return out.String(), nil
}

func (b *GeminiBackend) Close() error {
	return b.client.Close()
}
