package session

import (
	"context"

	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// IndexLoader reads a persisted session index
type IndexLoader interface {
	Load(ctx context.Context, sessionID kernel.SessionID) (*index.Index, error)
}
