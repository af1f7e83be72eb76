package index

import (
	"testing"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(seq int, vec ...float32) Entry {
	return Entry{Chunk: document.Chunk{Seq: seq, Text: string(rune('a' + seq))}, Vector: vec}
}

func TestSearch_OrdersByScore(t *testing.T) {
	idx := &Index{Dimension: 2, Entries: []Entry{
		entry(0, 0, 1),
		entry(1, 1, 0),
		entry(2, 1, 1),
	}}

	matches := idx.Search([]float32{1, 0}, 3)

	require.Len(t, matches, 3)
	assert.Equal(t, 1, matches[0].Chunk.Seq)
	assert.Equal(t, 2, matches[1].Chunk.Seq)
	assert.Equal(t, 0, matches[2].Chunk.Seq)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestSearch_TiesKeepDocumentOrder(t *testing.T) {
	idx := &Index{Dimension: 2, Entries: []Entry{
		entry(0, 1, 0),
		entry(1, 2, 0),
		entry(2, 3, 0),
	}}

	matches := idx.Search([]float32{1, 0}, 2)

	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Chunk.Seq)
	assert.Equal(t, 1, matches[1].Chunk.Seq)
}

func TestSearch_ClampsK(t *testing.T) {
	idx := &Index{Dimension: 1, Entries: []Entry{entry(0, 1), entry(1, 1)}}

	assert.Len(t, idx.Search([]float32{1}, 10), 2)
	assert.Empty(t, idx.Search([]float32{1}, 0))
	assert.Empty(t, idx.Search([]float32{1}, -3))
	assert.Empty(t, (&Index{}).Search([]float32{1}, 4))
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-2, 0}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, Cosine([]float32{1}, []float32{1, 0}))
}

func TestValidate_DimensionInvariant(t *testing.T) {
	idx := &Index{Dimension: 2, Entries: []Entry{entry(0, 1, 0), entry(1, 1)}}

	err := idx.Validate()
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeDimensionMismatch))
}
