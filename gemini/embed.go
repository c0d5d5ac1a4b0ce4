package gemini

import (
	"context"

	"github.com/fwojciec/askweb"
	"google.golang.org/genai"
)

// Ensure Embedder implements askweb.Embedder at compile time.
var _ askweb.Embedder = (*Embedder)(nil)

// Embedder implements askweb.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates an Embedder for the given model name.
// An empty model selects DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns the embedding vector for text.
// Returns EEMBED if the API call fails or returns no values.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		nil,
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, askweb.Errorf(askweb.EEMBED, "gemini embedding failed: %s", describe(err))
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil || len(result.Embeddings[0].Values) == 0 {
		return nil, askweb.Errorf(askweb.EEMBED, "gemini returned no embedding")
	}
	return result.Embeddings[0].Values, nil
}
