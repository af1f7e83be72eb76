package generationinfra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIBackend talks to the OpenAI chat API or any compatible endpoint,
// such as DeepSeek
type OpenAIBackend struct {
	name     string
	client   *openai.Client
	defaults generation.Options
}

var _ generation.Backend = (*OpenAIBackend)(nil)

// NewOpenAIBackend creates a backend; baseURL may be empty for the OpenAI API
func NewOpenAIBackend(name, apiKey, baseURL string, defaults generation.Options) *OpenAIBackend {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &OpenAIBackend{
		name:     name,
		client:   &client,
		defaults: defaults,
	}
}

func (b *OpenAIBackend) Name() string { return b.name }

func (b *OpenAIBackend) Complete(ctx context.Context, prompt string, opts generation.Options) (string, error) {
	opts = opts.Merge(b.defaults)

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(opts.Model),
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	completion, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", b.name, err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return completion.Choices[0].Message.Content, nil
}
