package indexsrv

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

// Service builds, persists and queries session indexes. The fallback
// embedder must never fail on valid input; it keeps retrieval available when
// the primary embedding service is not.
type Service struct {
	primary  index.Embedder
	fallback index.Embedder
	store    index.Store
	now      func() time.Time
}

// NewService accepts a nil primary, in which case every index is built with the fallback
func NewService(primary, fallback index.Embedder, store index.Store) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		store:    store,
		now:      time.Now,
	}
}

// PrimaryModel is the name of the configured primary model, or the fallback's
func (s *Service) PrimaryModel() string {
	if s.primary != nil {
		return s.primary.Model()
	}
	return s.fallback.Model()
}

// Embed returns the vector of text and the model that produced it
func (s *Service) Embed(ctx context.Context, text string) (kernel.Embedding, string, error) {
	vecs, model, err := s.embedWithFallback(ctx, []string{text})
	if err != nil {
		return nil, "", err
	}
	return vecs[0], model, nil
}

// Build embeds every chunk of doc and persists the index for the session
func (s *Service) Build(ctx context.Context, sessionID kernel.SessionID, doc *document.Document) (*index.Index, error) {
	if len(doc.Chunks) == 0 {
		return nil, index.ErrNoChunks().WithDetail("document", doc.Name)
	}

	texts := make([]string, len(doc.Chunks))
	for i, c := range doc.Chunks {
		texts[i] = c.Text
	}

	vecs, model, err := s.embedWithFallback(ctx, texts)
	if err != nil {
		return nil, err
	}

	idx := &index.Index{
		SessionID: sessionID,
		Model:     model,
		Dimension: len(vecs[0]),
		Document: index.Source{
			Name:   doc.Name,
			Format: doc.Format,
			Text:   doc.Text,
		},
		Entries:   make([]index.Entry, len(doc.Chunks)),
		CreatedAt: s.now().UTC(),
	}
	for i, c := range doc.Chunks {
		idx.Entries[i] = index.Entry{Chunk: c, Vector: vecs[i]}
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, idx); err != nil {
		return nil, storeError(err, sessionID)
	}

	logx.Infof("Indexed %d chunks for session %s with %s (dim %d)", len(idx.Entries), sessionID, model, idx.Dimension)
	return idx, nil
}

// Query returns the k chunks most similar to text. The query is embedded in
// the same space as the index; if that embedder is unavailable the chunks are
// re-embedded lexically so the query still gets an answer.
func (s *Service) Query(ctx context.Context, idx *index.Index, text string, k int) ([]index.Match, error) {
	if idx == nil {
		return nil, index.ErrIndexNotFound()
	}

	if embedder := s.embedderFor(idx.Model); embedder != nil {
		vecs, err := embedder.EmbedBatch(ctx, []string{text})
		if err == nil && len(vecs) == 1 && len(vecs[0]) == idx.Dimension {
			return idx.Search(vecs[0], k), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logx.Warnf("Query embedding with %s failed, ranking lexically: %v", idx.Model, err)
	} else {
		logx.Warnf("Index model %s is not configured, ranking lexically", idx.Model)
	}

	return s.lexicalQuery(ctx, idx, text, k)
}

// Load returns the persisted index of a session
func (s *Service) Load(ctx context.Context, sessionID kernel.SessionID) (*index.Index, error) {
	idx, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errx.IsCode(err, index.CodeIndexNotFound) {
			return nil, err
		}
		return nil, storeError(err, sessionID)
	}
	return idx, nil
}

func (s *Service) Delete(ctx context.Context, sessionID kernel.SessionID) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return storeError(err, sessionID)
	}
	return nil
}

func (s *Service) embedWithFallback(ctx context.Context, texts []string) ([][]float32, string, error) {
	if s.primary != nil {
		vecs, err := s.primary.EmbedBatch(ctx, texts)
		if err == nil && consistent(vecs, len(texts)) {
			return vecs, s.primary.Model(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		if err == nil {
			err = errors.New("inconsistent embedding response")
		}
		logx.Warnf("Primary embeddings (%s) unavailable, using %s: %v", s.primary.Model(), s.fallback.Model(), err)
	}

	vecs, err := s.fallback.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, "", index.ErrRegistry.NewWithCause(index.CodeEmbeddingFailed, err).
			WithDetail("model", s.fallback.Model())
	}
	if !consistent(vecs, len(texts)) {
		return nil, "", index.ErrEmbeddingFailed().WithDetail("model", s.fallback.Model())
	}
	return vecs, s.fallback.Model(), nil
}

func (s *Service) lexicalQuery(ctx context.Context, idx *index.Index, text string, k int) ([]index.Match, error) {
	vecs, err := s.fallback.EmbedBatch(ctx, append(idx.Texts(), text))
	if err != nil {
		return nil, index.ErrRegistry.NewWithCause(index.CodeEmbeddingFailed, err).
			WithDetail("model", s.fallback.Model())
	}

	entries := make([]index.Entry, len(idx.Entries))
	for i, e := range idx.Entries {
		entries[i] = index.Entry{Chunk: e.Chunk, Vector: vecs[i]}
	}
	return index.Rank(entries, vecs[len(vecs)-1], k), nil
}

func (s *Service) embedderFor(model string) index.Embedder {
	switch {
	case s.fallback.Model() == model:
		return s.fallback
	case s.primary != nil && s.primary.Model() == model:
		return s.primary
	}
	return nil
}

// consistent checks count and that all vectors share a non-zero dimension
func consistent(vecs [][]float32, n int) bool {
	if len(vecs) != n || n == 0 {
		return false
	}
	dim := len(vecs[0])
	if dim == 0 {
		return false
	}
	for _, v := range vecs {
		if len(v) != dim {
			return false
		}
	}
	return true
}

func storeError(err error, sessionID kernel.SessionID) error {
	if _, ok := errx.As(err); ok {
		return err
	}
	return index.ErrRegistry.NewWithCause(index.CodeStoreFailed, err).
		WithDetail("session_id", sessionID)
}
