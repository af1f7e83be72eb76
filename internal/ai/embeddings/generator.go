package embeddings

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// maxBatch keeps requests well under the API input limit
const maxBatch = 256

// EmbeddingsGenerator creates embeddings through the OpenAI API
type EmbeddingsGenerator struct {
	client *openai.Client
	model  string
}

// NewEmbeddingsGenerator creates a new embeddings generator
func NewEmbeddingsGenerator(apiKey, model string, opts ...option.RequestOption) *EmbeddingsGenerator {
	if model == "" {
		model = string(openai.EmbeddingModelTextEmbedding3Small)
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &EmbeddingsGenerator{
		client: &client,
		model:  model,
	}
}

func (g *EmbeddingsGenerator) Model() string {
	return g.model
}

// Embed creates an embedding vector for text
func (g *EmbeddingsGenerator) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch creates one embedding per text, in input order
func (g *EmbeddingsGenerator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("text %d is empty", i)
		}
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: texts[start:end],
			},
			Model: openai.EmbeddingModel(g.model),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("expected %d embeddings, got %d", end-start, len(resp.Data))
		}

		batch := make([][]float32, end-start)
		for _, data := range resp.Data {
			if data.Index < 0 || int(data.Index) >= len(batch) {
				return nil, fmt.Errorf("embedding index %d out of range", data.Index)
			}
			embedding32 := make([]float32, len(data.Embedding))
			for j, v := range data.Embedding {
				embedding32[j] = float32(v)
			}
			batch[data.Index] = embedding32
		}
		out = append(out, batch...)
	}

	return out, nil
}
