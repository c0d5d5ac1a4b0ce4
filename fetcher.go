package askweb

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML body of the page at url.
	// Returns EFETCH on timeout, connection failure, or a non-2xx status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// StatusError is returned by a Fetcher when the server answers with a
// non-2xx status. It unwraps to an EFETCH Error.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return Errorf(EFETCH, "HTTP %d for %s", e.StatusCode, e.URL)
}

// Permanent reports whether fetching the page again cannot succeed.
// Client errors are permanent except timeouts and rate limiting.
func (e *StatusError) Permanent() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}
