//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSite serves a page whose article is written by a script, a page that
// answers slowly and a page that never answers.
func newSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/scripted", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><head><title>Scripted</title></head>
<body><main id="content">Loading...</main>
<script>document.getElementById('content').innerHTML = '<article><p>Rendered by script</p></article>';</script>
</body></html>`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`<html><body>late</body></html>`))
	})
	mux.HandleFunc("/hang", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	site := newSite(t)

	t.Run("returns the DOM after scripts ran", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), site.URL+"/scripted")

		require.NoError(t, err)
		assert.Contains(t, html, "<article><p>Rendered by script</p></article>")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("honours a canceled context", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = fetcher.Fetch(ctx, site.URL+"/hang")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("gives up on slow pages", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), site.URL+"/slow")

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("restarts Chrome after the page limit", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher(rod.WithRecycleAfter(1))
		require.NoError(t, err)
		defer fetcher.Close()

		first := fetcher.LauncherPID()
		for range 2 {
			_, err := fetcher.Fetch(context.Background(), site.URL+"/scripted")
			require.NoError(t, err)
		}

		assert.NotEqual(t, first, fetcher.LauncherPID())
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, markdownizer.EINVALID, markdownizer.ErrorCode(err))
	assert.Equal(t, "fetcher is closed", markdownizer.ErrorMessage(err))
}
