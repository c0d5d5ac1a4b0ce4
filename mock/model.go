package mock

import (
	"context"

	"github.com/fwojciec/askweb"
)

var (
	_ askweb.Embedder  = (*Embedder)(nil)
	_ askweb.ChatModel = (*ChatModel)(nil)
)

// Embedder is a mock implementation of askweb.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

// ChatModel is a mock implementation of askweb.ChatModel.
type ChatModel struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (m *ChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateFn(ctx, prompt)
}

var _ askweb.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of askweb.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
