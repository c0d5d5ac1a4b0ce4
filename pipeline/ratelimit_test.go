package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/askweb/mock"
	"github.com/fwojciec/askweb/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitedEmbedder(t *testing.T) {
	t.Parallel()

	inner := &mock.Embedder{
		EmbedFn: func(_ context.Context, text string) ([]float32, error) {
			return []float32{float32(len(text))}, nil
		},
	}

	t.Run("delegates to the wrapped embedder", func(t *testing.T) {
		t.Parallel()

		e := pipeline.NewRateLimitedEmbedder(inner, 100)

		vec, err := e.Embed(context.Background(), "abc")

		require.NoError(t, err)
		assert.Equal(t, []float32{3}, vec)
	})

	t.Run("paces consecutive calls", func(t *testing.T) {
		t.Parallel()

		e := pipeline.NewRateLimitedEmbedder(inner, 20)

		start := time.Now()
		for range 3 {
			_, err := e.Embed(context.Background(), "abc")
			require.NoError(t, err)
		}

		// Burst of 1 at 20/s: the second and third calls wait ~50ms each.
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("does not pace when rps is zero", func(t *testing.T) {
		t.Parallel()

		e := pipeline.NewRateLimitedEmbedder(inner, 0)

		start := time.Now()
		for range 50 {
			_, err := e.Embed(context.Background(), "abc")
			require.NoError(t, err)
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		e := pipeline.NewRateLimitedEmbedder(inner, 0.1)
		_, err := e.Embed(context.Background(), "abc")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err = e.Embed(ctx, "abc")

		assert.Error(t, err)
	})
}
