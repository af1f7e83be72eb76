package chat

import (
	"context"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// DocumentLoader turns raw upload bytes into a chunked document
type DocumentLoader interface {
	Load(ctx context.Context, name string, data []byte, declared string) (*document.Document, error)
}

// Indexer builds session indexes and retrieves from them
type Indexer interface {
	Build(ctx context.Context, sessionID kernel.SessionID, doc *document.Document) (*index.Index, error)
	Query(ctx context.Context, idx *index.Index, text string, k int) ([]index.Match, error)
}
