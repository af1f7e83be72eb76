package embeddings

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestLexical_Deterministic(t *testing.T) {
	ctx := context.Background()
	a := NewLexical(64)
	b := NewLexical(64)

	v1, err := a.Embed(ctx, "Senior Go engineer, Kubernetes and Postgres")
	require.NoError(t, err)
	v2, err := b.Embed(ctx, "Senior Go engineer, Kubernetes and Postgres")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, 64)
	assert.Equal(t, "lexical-xxhash-64", a.Model())
}

func TestLexical_Normalized(t *testing.T) {
	v, _ := NewLexical(128).Embed(context.Background(), "python python go rust")
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestLexical_EmptyTextIsZeroVector(t *testing.T) {
	v, err := NewLexical(16).Embed(context.Background(), "  ,,, ")
	require.NoError(t, err)
	for _, x := range v {
		assert.Zero(t, x)
	}
}

func TestLexical_SimilarTextScoresHigher(t *testing.T) {
	ctx := context.Background()
	lex := NewLexical(512)

	vecs, err := lex.EmbedBatch(ctx, []string{
		"Worked five years as a backend engineer writing Go services",
		"Education: Bachelor of Arts in History, minor in French",
	})
	require.NoError(t, err)
	query, _ := lex.Embed(ctx, "What backend engineer experience with Go?")

	assert.Greater(t, cosine(query, vecs[0]), cosine(query, vecs[1]))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"c", "go", "2024", "café"}, Tokenize("C++, Go! 2024 Café"))
}
