package indexsrv

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
	"golang.org/x/crypto/blake2b"
)

// CachedEmbedder serves repeated texts from an EmbeddingCache. Cache errors
// are logged and never fail the embedding.
type CachedEmbedder struct {
	inner index.Embedder
	cache index.EmbeddingCache
	ttl   time.Duration
}

var _ index.Embedder = (*CachedEmbedder)(nil)

func NewCachedEmbedder(inner index.Embedder, cache index.EmbeddingCache, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachedEmbedder) Model() string {
	return c.inner.Model()
}

func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = CacheKey(c.inner.Model(), t)
	}

	hits, err := c.cache.GetMany(ctx, keys)
	if err != nil {
		logx.Warnf("Embedding cache read failed: %v", err)
		hits = nil
	}

	out := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int
	for i, k := range keys {
		if v, ok := hits[k]; ok {
			out[i] = v
			continue
		}
		missTexts = append(missTexts, texts[i])
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		logx.Debugf("Embedding cache served all %d texts", len(texts))
		return out, nil
	}

	vecs, err := c.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missTexts), len(vecs))
	}

	fresh := make(map[string][]float32, len(vecs))
	for j, v := range vecs {
		out[missIdx[j]] = v
		fresh[keys[missIdx[j]]] = v
	}
	if err := c.cache.SetMany(ctx, fresh, c.ttl); err != nil {
		logx.Warnf("Embedding cache write failed: %v", err)
	}

	return out, nil
}

// CacheKey identifies text within one embedding model
func CacheKey(model, text string) string {
	sum := blake2b.Sum256([]byte(text))
	return "emb:" + model + ":" + hex.EncodeToString(sum[:16])
}
