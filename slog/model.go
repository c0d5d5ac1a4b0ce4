package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/askweb"
)

// Ensure LoggingEmbedder implements askweb.Embedder.
var _ askweb.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging. Embedding runs
// once per chunk, so entries are logged at debug level.
type LoggingEmbedder struct {
	next   askweb.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next askweb.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"chars", len([]rune(text)),
			"dimensions", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

// Ensure LoggingChatModel implements askweb.ChatModel.
var _ askweb.ChatModel = (*LoggingChatModel)(nil)

// LoggingChatModel wraps a ChatModel with logging. When a TokenCounter is
// set the prompt size is logged in tokens.
type LoggingChatModel struct {
	next   askweb.ChatModel
	tokens askweb.TokenCounter
	logger *slog.Logger
}

// NewLoggingChatModel creates a new LoggingChatModel. tokens may be nil.
func NewLoggingChatModel(next askweb.ChatModel, tokens askweb.TokenCounter, logger *slog.Logger) *LoggingChatModel {
	return &LoggingChatModel{next: next, tokens: tokens, logger: logger}
}

// Generate delegates to the wrapped model and logs the operation.
func (m *LoggingChatModel) Generate(ctx context.Context, prompt string) (text string, err error) {
	attrs := []any{"prompt_chars", len([]rune(prompt))}
	if m.tokens != nil {
		if n, terr := m.tokens.CountTokens(ctx, prompt); terr == nil {
			attrs = append(attrs, "prompt_tokens", n)
		}
	}

	defer func(begin time.Time) {
		m.logger.Info("generate", append(attrs,
			"reply_chars", len([]rune(text)),
			"duration", time.Since(begin),
			"err", err,
		)...)
	}(time.Now())
	return m.next.Generate(ctx, prompt)
}
