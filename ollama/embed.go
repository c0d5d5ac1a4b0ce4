package ollama

import (
	"context"

	"github.com/fwojciec/askweb"
)

// Ensure Embedder implements askweb.Embedder at compile time.
var _ askweb.Embedder = (*Embedder)(nil)

// Embedder computes embeddings with the /api/embed endpoint.
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates an Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed returns the embedding vector for text.
// Returns EEMBED if the server fails or returns no vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp embedResponse
	if err := e.client.post(ctx, "/api/embed", embedRequest{Model: e.model, Input: text}, &resp); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, askweb.Errorf(askweb.EEMBED, "%v", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, askweb.Errorf(askweb.EEMBED, "ollama returned no embedding")
	}
	return resp.Embeddings[0], nil
}
