package conversation

import (
	"context"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
)

const summaryPrompt = `Progressively summarize the lines of conversation provided, adding onto the previous summary and returning a new summary.
Keep facts about the candidate and the questions already answered.

Current summary:
{summary}

New lines of conversation:
{new_lines}

New summary:`

// GenerationSummarizer asks the language model for a progressive summary
type GenerationSummarizer struct {
	generator generation.Generator
	opts      generation.Options
}

var _ Summarizer = (*GenerationSummarizer)(nil)

func NewGenerationSummarizer(generator generation.Generator) *GenerationSummarizer {
	return &GenerationSummarizer{
		generator: generator,
		opts:      generation.Options{Temperature: 0.1},
	}
}

func (s *GenerationSummarizer) Summarize(ctx context.Context, existing string, exchanges []Exchange) (string, error) {
	prompt := strings.NewReplacer(
		"{summary}", existing,
		"{new_lines}", renderExchanges(exchanges),
	).Replace(summaryPrompt)

	out, err := s.generator.Complete(ctx, prompt, s.opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
