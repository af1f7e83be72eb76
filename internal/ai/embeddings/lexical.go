package embeddings

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Lexical is a deterministic bag-of-words embedder used when no embedding
// service is reachable. Tokens are hashed into signed buckets.
type Lexical struct {
	dim int
}

func NewLexical(dim int) *Lexical {
	if dim <= 0 {
		dim = 512
	}
	return &Lexical{dim: dim}
}

func (l *Lexical) Model() string {
	return fmt.Sprintf("lexical-xxhash-%d", l.dim)
}

func (l *Lexical) Dimension() int {
	return l.dim
}

func (l *Lexical) Embed(_ context.Context, text string) ([]float32, error) {
	return l.vector(text), nil
}

func (l *Lexical) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = l.vector(text)
	}
	return out, nil
}

func (l *Lexical) vector(text string) []float32 {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}

	acc := make([]float64, l.dim)
	for tok, n := range counts {
		h := xxhash.Sum64String(tok)
		bucket := int(h % uint64(l.dim))
		w := 1 + math.Log(float64(n))
		if h>>63 == 1 {
			w = -w
		}
		acc[bucket] += w
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	vec := make([]float32, l.dim)
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
