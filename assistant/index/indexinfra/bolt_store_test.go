package indexinfra

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex(session string, model string, texts ...string) *index.Index {
	idx := &index.Index{
		SessionID: kernel.NewSessionID(session),
		Model:     model,
		Dimension: 3,
		Document:  index.Source{Name: "cv.txt", Format: document.FormatTXT, Text: "full text"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	for i, t := range texts {
		idx.Entries = append(idx.Entries, index.Entry{
			Chunk:  document.Chunk{ID: document.ChunkIDFor(t, i), Seq: i, Text: t, SourceOffset: i * 10},
			Vector: kernel.Embedding{float32(i), 0.5, -1.25},
		})
	}
	return idx
}

func TestBoltStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)

	want := sampleIndex("s-1", "text-embedding-3-small", "alpha", "beta", "gamma")
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx, want.SessionID)
	require.NoError(t, err)

	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Dimension, got.Dimension)
	assert.Equal(t, want.Document, got.Document)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Entries, 3)
	for i := range want.Entries {
		assert.Equal(t, want.Entries[i].Chunk, got.Entries[i].Chunk)
		assert.Equal(t, want.Entries[i].Vector, got.Entries[i].Vector)
	}
}

func TestBoltStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewBoltStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, sampleIndex("s-1", "m1", "a", "b", "c")))
	require.NoError(t, store.Save(ctx, sampleIndex("s-1", "m2", "only")))

	got, err := store.Load(ctx, kernel.NewSessionID("s-1"))
	require.NoError(t, err)
	assert.Equal(t, "m2", got.Model)
	assert.Len(t, got.Entries, 1)

	files, err := os.ReadDir(filepath.Join(dir, "s-1"))
	require.NoError(t, err)
	assert.Len(t, files, 1, "no temp files left behind")
}

func TestBoltStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(ctx, kernel.NewSessionID("missing"))
	assert.True(t, errx.IsCode(err, index.CodeIndexNotFound))

	_, err = store.Load(ctx, kernel.NewSessionID("../escape"))
	assert.True(t, errx.IsCode(err, index.CodeIndexNotFound))
}

func TestBoltStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)

	idx := sampleIndex("s-2", "m", "x")
	require.NoError(t, store.Save(ctx, idx))
	require.NoError(t, store.Delete(ctx, idx.SessionID))

	_, err = store.Load(ctx, idx.SessionID)
	assert.True(t, errx.IsCode(err, index.CodeIndexNotFound))
}

func TestVectorCodec(t *testing.T) {
	v := []float32{0, -1.5, 3.25, 1e-7}
	got, err := decodeVector(encodeVector(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = decodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}
