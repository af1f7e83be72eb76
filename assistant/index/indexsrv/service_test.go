package indexsrv

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/assistant/index/indexinfra"
	"github.com/Abraxas-365/resumegpt/internal/ai/embeddings"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fakes
// ============================================================================

// keywordEmbedder maps each text to a one-hot vector of the first keyword it contains
type keywordEmbedder struct {
	model    string
	keywords []string
	err      error
	calls    int
}

func (k *keywordEmbedder) Model() string { return k.model }

func (k *keywordEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	k.calls++
	if k.err != nil {
		return nil, k.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, len(k.keywords)+1)
		v[len(k.keywords)] = 0.01
		for j, kw := range k.keywords {
			if strings.Contains(t, kw) {
				v[j] = 1
				break
			}
		}
		out[i] = v
	}
	return out, nil
}

type memStore struct {
	mu      sync.Mutex
	indexes map[kernel.SessionID]*index.Index
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{indexes: map[kernel.SessionID]*index.Index{}}
}

func (m *memStore) Save(_ context.Context, idx *index.Index) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.indexes[idx.SessionID] = idx
	return nil
}

func (m *memStore) Load(_ context.Context, id kernel.SessionID) (*index.Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.indexes[id]
	if !ok {
		return nil, index.ErrIndexNotFound()
	}
	return idx, nil
}

func (m *memStore) Delete(_ context.Context, id kernel.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.indexes, id)
	return nil
}

func (m *memStore) Close() error { return nil }

func resumeDoc() *document.Document {
	texts := []string{
		"Education: BSc Computer Science",
		"Experience: built payment APIs in golang",
		"Hobbies: climbing and chess",
	}
	doc := &document.Document{Name: "cv.txt", Format: document.FormatTXT, Text: "full"}
	for i, t := range texts {
		doc.Chunks = append(doc.Chunks, document.Chunk{ID: document.ChunkIDFor(t, i), Seq: i, Text: t})
	}
	return doc
}

// ============================================================================
// Tests
// ============================================================================

func TestBuild_UsesPrimary(t *testing.T) {
	ctx := context.Background()
	primary := &keywordEmbedder{model: "kw", keywords: []string{"Education", "golang", "chess"}}
	store := newMemStore()
	svc := NewService(primary, embeddings.NewLexical(64), store)

	idx, err := svc.Build(ctx, "s1", resumeDoc())
	require.NoError(t, err)

	assert.Equal(t, "kw", idx.Model)
	assert.Equal(t, 4, idx.Dimension)
	assert.Len(t, idx.Entries, 3)
	require.NoError(t, idx.Validate())

	stored, err := svc.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, idx, stored)

	matches, err := svc.Query(ctx, idx, "what golang work?", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Chunk.Seq)
}

func TestBuild_FallsBackWhenPrimaryFails(t *testing.T) {
	ctx := context.Background()
	primary := &keywordEmbedder{model: "kw", err: errors.New("quota exceeded")}
	lex := embeddings.NewLexical(128)
	svc := NewService(primary, lex, newMemStore())

	idx, err := svc.Build(ctx, "s1", resumeDoc())
	require.NoError(t, err)
	assert.Equal(t, lex.Model(), idx.Model)
	assert.Equal(t, 128, idx.Dimension)

	matches, err := svc.Query(ctx, idx, "chess climbing", 4)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
	assert.Equal(t, 2, matches[0].Chunk.Seq)
}

func TestBuild_WithoutPrimary(t *testing.T) {
	svc := NewService(nil, embeddings.NewLexical(32), newMemStore())

	idx, err := svc.Build(context.Background(), "s1", resumeDoc())
	require.NoError(t, err)
	assert.Equal(t, "lexical-xxhash-32", idx.Model)
	assert.Equal(t, "lexical-xxhash-32", svc.PrimaryModel())
}

func TestBuild_PersistedIndexAnswersTheSame(t *testing.T) {
	tests := []struct {
		name    string
		primary index.Embedder
	}{
		{"primary model", &keywordEmbedder{model: "kw", keywords: []string{"Education", "golang", "chess"}}},
		{"lexical fallback", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			store, err := indexinfra.NewBoltStore(dir)
			require.NoError(t, err)
			svc := NewService(tt.primary, embeddings.NewLexical(64), store)

			built, err := svc.Build(ctx, "s1", resumeDoc())
			require.NoError(t, err)
			want, err := svc.Query(ctx, built, "golang payment experience", 3)
			require.NoError(t, err)
			require.NoError(t, store.Close())

			// a new process opens the same directory
			reopened, err := indexinfra.NewBoltStore(dir)
			require.NoError(t, err)
			defer reopened.Close()
			restarted := NewService(tt.primary, embeddings.NewLexical(64), reopened)

			loaded, err := restarted.Load(ctx, "s1")
			require.NoError(t, err)
			assert.NotSame(t, built, loaded)
			assert.Equal(t, built.Model, loaded.Model)

			got, err := restarted.Query(ctx, loaded, "golang payment experience", 3)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestQuery_PrimaryDownAfterBuild(t *testing.T) {
	ctx := context.Background()
	primary := &keywordEmbedder{model: "kw", keywords: []string{"Education", "golang", "chess"}}
	svc := NewService(primary, embeddings.NewLexical(256), newMemStore())

	idx, err := svc.Build(ctx, "s1", resumeDoc())
	require.NoError(t, err)

	primary.err = errors.New("connection reset")
	matches, err := svc.Query(ctx, idx, "payment APIs golang", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Chunk.Seq)
}

func TestQuery_UnknownModelRanksLexically(t *testing.T) {
	ctx := context.Background()
	svc := NewService(nil, embeddings.NewLexical(64), newMemStore())

	idx := &index.Index{Model: "retired-model", Dimension: 2}
	for _, c := range resumeDoc().Chunks {
		idx.Entries = append(idx.Entries, index.Entry{Chunk: c, Vector: kernel.Embedding{1, 0}})
	}

	matches, err := svc.Query(ctx, idx, "Computer Science education", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Chunk.Seq)
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()

	svc := NewService(nil, embeddings.NewLexical(8), newMemStore())
	_, err := svc.Build(ctx, "s1", &document.Document{Name: "empty"})
	assert.True(t, errx.IsCode(err, index.CodeNoChunks))

	store := newMemStore()
	store.saveErr = errors.New("disk full")
	svc = NewService(nil, embeddings.NewLexical(8), store)
	_, err = svc.Build(ctx, "s1", resumeDoc())
	assert.True(t, errx.IsCode(err, index.CodeStoreFailed))

	_, err = svc.Load(ctx, "nobody")
	assert.True(t, errx.IsCode(err, index.CodeIndexNotFound))

	_, err = svc.Query(ctx, nil, "q", 4)
	assert.True(t, errx.IsCode(err, index.CodeIndexNotFound))
}

func TestBuild_CancelledContextDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &keywordEmbedder{model: "kw", err: context.Canceled}
	svc := NewService(primary, embeddings.NewLexical(8), newMemStore())

	_, err := svc.Build(ctx, "s1", resumeDoc())
	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================================================
// Cache
// ============================================================================

type memCache struct {
	data    map[string][]float32
	getErr  error
	lastTTL time.Duration
}

func (m *memCache) GetMany(_ context.Context, keys []string) (map[string][]float32, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := map[string][]float32{}
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memCache) SetMany(_ context.Context, entries map[string][]float32, ttl time.Duration) error {
	for k, v := range entries {
		m.data[k] = v
	}
	m.lastTTL = ttl
	return nil
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()
	inner := &keywordEmbedder{model: "kw", keywords: []string{"go"}}
	cache := &memCache{data: map[string][]float32{}}
	cached := NewCachedEmbedder(inner, cache, time.Hour)

	first, err := cached.EmbedBatch(ctx, []string{"go", "rust"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Len(t, cache.data, 2)
	assert.Equal(t, time.Hour, cache.lastTTL)

	second, err := cached.EmbedBatch(ctx, []string{"rust", "go"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "served from cache")
	assert.Equal(t, first[0], second[1])
	assert.Equal(t, first[1], second[0])

	cache.getErr = errors.New("redis down")
	_, err = cached.EmbedBatch(ctx, []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("m", "text"), CacheKey("m", "text"))
	assert.NotEqual(t, CacheKey("m", "text"), CacheKey("other", "text"))
	assert.NotEqual(t, CacheKey("m", "text"), CacheKey("m", "text2"))
}
