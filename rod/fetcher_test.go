//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(5 * time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { fetcher.Close() })

	t.Run("returns HTML after scripts run", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<!DOCTYPE html>
<html>
<head><title>Search result</title></head>
<body>
<article><p id="answer">Loading...</p></article>
<script>
document.getElementById('answer').textContent = 'Cats purr when content.';
</script>
</body>
</html>`)

		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "Cats purr when content.")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("returns context error when already cancelled", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<p>never read</p>`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, srv.URL)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns EFETCH for unreachable host", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := fetcher.Fetch(context.Background(), url)

		require.Error(t, err)
		assert.Equal(t, askweb.EFETCH, askweb.ErrorCode(err))
	})
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Fetch_ReplacesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, `<html><body><p>page</p></body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer fetcher.Close()

	first := fetcher.LauncherPID()
	for range 3 {
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	assert.NotEqual(t, first, fetcher.LauncherPID())
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)

		require.NoError(t, fetcher.Close())
		require.NoError(t, fetcher.Close())
		assert.Zero(t, fetcher.LauncherPID())
	})

	t.Run("rejects fetches afterwards", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		require.NoError(t, fetcher.Close())

		_, err = fetcher.Fetch(context.Background(), "http://example.com")

		require.Error(t, err)
		assert.Equal(t, askweb.EINVALID, askweb.ErrorCode(err))
	})
}
