package mock

import (
	"context"

	"github.com/fwojciec/askweb"
)

var (
	_ askweb.Asker       = (*Asker)(nil)
	_ askweb.Synthesizer = (*Synthesizer)(nil)
)

// Asker is a mock implementation of askweb.Asker.
type Asker struct {
	AnswerQueryFn func(ctx context.Context, question string) (*askweb.Answer, error)
}

func (a *Asker) AnswerQuery(ctx context.Context, question string) (*askweb.Answer, error) {
	return a.AnswerQueryFn(ctx, question)
}

// Synthesizer is a mock implementation of askweb.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, chunks []askweb.Chunk, question string) (string, error)
}

func (s *Synthesizer) Synthesize(ctx context.Context, chunks []askweb.Chunk, question string) (string, error) {
	return s.SynthesizeFn(ctx, chunks, question)
}
