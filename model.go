package askweb

import (
	"context"
	"time"
)

// DefaultModelTimeout bounds a single embedding or generation call.
const DefaultModelTimeout = 60 * time.Second

// Embedder computes embedding vectors. Every vector returned by one
// Embedder has the same dimensionality.
type Embedder interface {
	// Embed returns the embedding of text.
	// Returns EEMBED if the model is unreachable or the output is malformed.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChatModel generates text from a prompt.
type ChatModel interface {
	// Generate returns the model's completion of prompt.
	// Returns EGENERATE if the model is unreachable or reports an error.
	Generate(ctx context.Context, prompt string) (string, error)
}

// TokenCounter counts tokens for a model's tokenizer.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
