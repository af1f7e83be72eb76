package index

import (
	"math"
	"sort"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// Source describes the resume an index was built from
type Source struct {
	Name   string          `json:"name"`
	Format document.Format `json:"format"`
	Text   string          `json:"text"`
}

// Entry pairs a chunk with its embedding
type Entry struct {
	Chunk  document.Chunk   `json:"chunk"`
	Vector kernel.Embedding `json:"-"`
}

// Index is the searchable form of one session's resume. Every vector has
// length Dimension and was produced by the embedder named Model.
type Index struct {
	SessionID kernel.SessionID `json:"session_id"`
	Model     string           `json:"model"`
	Dimension int              `json:"dimension"`
	Document  Source           `json:"document"`
	Entries   []Entry          `json:"-"`
	CreatedAt time.Time        `json:"created_at"`
}

// Match is a retrieved chunk with its cosine similarity to the query
type Match struct {
	Chunk document.Chunk `json:"chunk"`
	Score float64        `json:"score"`
}

// Chunks returns the indexed chunks in document order
func (idx *Index) Chunks() []document.Chunk {
	out := make([]document.Chunk, len(idx.Entries))
	for i, e := range idx.Entries {
		out[i] = e.Chunk
	}
	return out
}

// Texts returns the chunk texts in document order
func (idx *Index) Texts() []string {
	out := make([]string, len(idx.Entries))
	for i, e := range idx.Entries {
		out[i] = e.Chunk.Text
	}
	return out
}

// Validate checks the dimension invariant
func (idx *Index) Validate() error {
	for _, e := range idx.Entries {
		if e.Vector.Dimension() != idx.Dimension {
			return ErrDimensionMismatch().
				WithDetail("chunk_id", e.Chunk.ID).
				WithDetail("expected", idx.Dimension).
				WithDetail("found", e.Vector.Dimension())
		}
	}
	return nil
}

// Search ranks entries by cosine similarity to query. Ties keep document
// order and k is clamped to the number of entries.
func (idx *Index) Search(query []float32, k int) []Match {
	return Rank(idx.Entries, query, k)
}

// Rank scores entries against query and returns the best k
func Rank(entries []Entry, query []float32, k int) []Match {
	k = max(0, min(k, len(entries)))
	if k == 0 {
		return []Match{}
	}

	matches := make([]Match, len(entries))
	for i, e := range entries {
		matches[i] = Match{Chunk: e.Chunk, Score: Cosine(query, e.Vector)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches[:k]
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector or the lengths differ
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
