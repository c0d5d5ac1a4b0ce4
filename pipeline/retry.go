package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/askweb"
)

// FetchFunc fetches one page.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is told about each failed attempt that will be retried.
// attempt is the number of the attempt about to start.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, waiting delays[i] before
// attempt i+2. With no delays a single attempt is made. Responses that
// cannot change on retry, such as a 404, end the loop at once. The error
// of the last attempt is returned.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if attempt == len(delays) || permanent(err) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}

func permanent(err error) bool {
	var statusErr *askweb.StatusError
	return errors.As(err, &statusErr) && statusErr.Permanent()
}
