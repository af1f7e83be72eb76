package conversation

import "context"

// Memory holds the history of one session. Implementations are not safe for
// concurrent use; the owning session serializes access.
type Memory interface {
	Policy() Policy

	// Append records an exchange and applies the policy's bound
	Append(ctx context.Context, ex Exchange) error

	// Context renders the history for inclusion in a prompt
	Context() string

	Clear()

	// Exchanges returns the retained exchanges, oldest first
	Exchanges() []Exchange

	Stats() Stats
}

// Summarizer folds exchanges into a running summary
type Summarizer interface {
	Summarize(ctx context.Context, existing string, exchanges []Exchange) (string, error)
}
