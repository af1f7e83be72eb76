package generationinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultMaxTokens = 1024

// AnthropicBackend uses the Messages API
type AnthropicBackend struct {
	client   *anthropic.Client
	defaults generation.Options
}

var _ generation.Backend = (*AnthropicBackend)(nil)

func NewAnthropicBackend(apiKey string, defaults generation.Options) *AnthropicBackend {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	return &AnthropicBackend{
		client:   &client,
		defaults: defaults,
	}
}

func (b *AnthropicBackend) Name() string { return "anthropic" }

func (b *AnthropicBackend) Complete(ctx context.Context, prompt string, opts generation.Options) (string, error) {
	opts = opts.Merge(b.defaults)
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.Temperature > 0 {
		// the Messages API caps temperature at 1
		params.Temperature = anthropic.Float(min(opts.Temperature, 1))
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
