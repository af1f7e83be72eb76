package generation

import "context"

// Backend is one hosted LLM
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Generator completes prompts; the fallback chain is the production implementation
type Generator interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
