// Package rod provides an askweb.Fetcher that renders pages in headless
// Chrome, for sites that build their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/askweb"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements askweb.Fetcher at compile time.
var _ askweb.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	session  *session
	timeout  time.Duration
	maxPages int
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a single page load.
// Defaults to askweb.DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// replaced. Zero disables replacement.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  askweb.DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	s, err := newSession(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.session = s
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// Returns EFETCH if the page cannot be loaded and EINVALID after Close.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", askweb.Errorf(askweb.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser, release, err := f.session.acquire()
	if err != nil {
		return "", askweb.Errorf(askweb.EINVALID, "fetcher is closed")
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", askweb.Errorf(askweb.EFETCH, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fetchError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(ctx, url, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.session.close()
}

// LauncherPID returns the process ID of the browser launcher, or 0 after
// Close.
func (f *Fetcher) LauncherPID() int {
	return f.session.pid()
}

// fetchError keeps context errors intact so callers can tell a timeout
// from a page failure.
func fetchError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return ctxErr
	}
	return askweb.Errorf(askweb.EFETCH, "loading %s: %v", url, err)
}
