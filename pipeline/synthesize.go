package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/askweb"
)

// Ensure Synthesizer implements askweb.Synthesizer at compile time.
var _ askweb.Synthesizer = (*Synthesizer)(nil)

// Synthesizer answers a question from retrieved chunks with one call to a
// chat model.
type Synthesizer struct {
	Chat    askweb.ChatModel
	Limits  askweb.ContextLimits
	Timeout time.Duration
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithContextLimits bounds how much retrieved text goes into the prompt.
func WithContextLimits(limits askweb.ContextLimits) SynthesizerOption {
	return func(s *Synthesizer) {
		s.Limits = limits
	}
}

// WithGenerateTimeout bounds the chat model call.
// Defaults to askweb.DefaultModelTimeout.
func WithGenerateTimeout(d time.Duration) SynthesizerOption {
	return func(s *Synthesizer) {
		if d > 0 {
			s.Timeout = d
		}
	}
}

// NewSynthesizer creates a Synthesizer with the default context limits.
func NewSynthesizer(chat askweb.ChatModel, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		Chat: chat,
		Limits: askweb.ContextLimits{
			MaxChunks: askweb.DefaultMaxContextChunks,
			MaxChars:  askweb.DefaultMaxContextChars,
		},
		Timeout: askweb.DefaultModelTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the prompt and invokes the chat model once.
// Failures, including running out of time, are returned as EGENERATE and
// never retried.
func (s *Synthesizer) Synthesize(ctx context.Context, chunks []askweb.Chunk, question string) (string, error) {
	prompt := askweb.BuildPrompt(chunks, question, s.Limits)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = askweb.DefaultModelTimeout
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := s.Chat.Generate(genCtx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(genCtx.Err(), context.DeadlineExceeded) {
			return "", askweb.Errorf(askweb.EGENERATE, "generation timed out after %s", timeout)
		}
		return "", stageError(askweb.EGENERATE, err)
	}
	return text, nil
}
