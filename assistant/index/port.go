package index

import (
	"context"
	"time"

	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// Embedder turns texts into vectors of a fixed dimension
type Embedder interface {
	// Model names the embedding space; vectors from different models are not comparable
	Model() string

	// EmbedBatch returns one vector per text, in input order
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists indexes per session
type Store interface {
	// Save replaces any existing index for the session atomically
	Save(ctx context.Context, idx *Index) error

	// Load returns ErrIndexNotFound when the session has no index
	Load(ctx context.Context, sessionID kernel.SessionID) (*Index, error)

	Delete(ctx context.Context, sessionID kernel.SessionID) error

	Close() error
}

// EmbeddingCache memoizes embeddings by key
type EmbeddingCache interface {
	GetMany(ctx context.Context, keys []string) (map[string][]float32, error)
	SetMany(ctx context.Context, entries map[string][]float32, ttl time.Duration) error
}
