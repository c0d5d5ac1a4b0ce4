package pipeline

import (
	"context"

	"github.com/fwojciec/askweb"
	"golang.org/x/time/rate"
)

var _ askweb.Embedder = (*RateLimitedEmbedder)(nil)

// RateLimitedEmbedder paces calls to an embedding backend with a token
// bucket so bursts of chunks stay within provider quotas.
type RateLimitedEmbedder struct {
	next    askweb.Embedder
	limiter *rate.Limiter
}

// NewRateLimitedEmbedder wraps next with a limit of rps calls per second
// and a burst of 1. A non-positive rps disables pacing.
func NewRateLimitedEmbedder(next askweb.Embedder, rps float64) *RateLimitedEmbedder {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &RateLimitedEmbedder{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Embed waits for the limiter and then delegates to the wrapped embedder.
// Returns the context error if ctx is done before the wait completes.
func (e *RateLimitedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return e.next.Embed(ctx, text)
}
