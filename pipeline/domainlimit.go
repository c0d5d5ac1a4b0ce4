package pipeline

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/askweb"
	"golang.org/x/time/rate"
)

// DomainLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed concurrently while requests to the
// same host are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the host may be contacted again.
// Returns an error if the context is cancelled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure PoliteFetcher implements askweb.Fetcher at compile time.
var _ askweb.Fetcher = (*PoliteFetcher)(nil)

// PoliteFetcher spaces out fetches to the same host. Search results often
// contain several pages from one site.
type PoliteFetcher struct {
	next    askweb.Fetcher
	limiter *DomainLimiter
}

// NewPoliteFetcher wraps next so each host is fetched at most rps times per
// second. A non-positive rps disables limiting.
func NewPoliteFetcher(next askweb.Fetcher, rps float64) *PoliteFetcher {
	f := &PoliteFetcher{next: next}
	if rps > 0 {
		f.limiter = NewDomainLimiter(rps)
	}
	return f
}

// Fetch waits for the URL's host to be available, then delegates.
func (f *PoliteFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		host := rawURL
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			host = u.Host
		}
		if err := f.limiter.Wait(ctx, host); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", askweb.Errorf(askweb.EFETCH, "rate limit: %v", err)
		}
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *PoliteFetcher) Close() error {
	return f.next.Close()
}
