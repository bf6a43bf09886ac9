//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/goquery"
	"github.com/fwojciec/markdownizer/html"
	"github.com/fwojciec/markdownizer/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A page whose article only exists after its script runs can still be
// extracted and skeletonized.
func TestFetcher_Integration_ScriptBuiltArticle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rendered</title></head>
<body>
<div id="app"></div>
<script>
const article = document.createElement('article');
article.innerHTML = '<h1>Built by script</h1><p>Price: <code>$100</code></p>';
document.getElementById('app').appendChild(article);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	page, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)

	result, err := goquery.NewExtractor().Extract(page)
	require.NoError(t, err)
	assert.Equal(t, markdownizer.StrategySemantic, result.Strategy)
	assert.Equal(t, "Rendered", result.Title)

	sk, err := html.NewSkeletonizer().Skeletonize(result.ContentHTML)
	require.NoError(t, err)
	assert.Contains(t, sk.Tokens.Values(), "Built by script")
	assert.Contains(t, sk.Tokens.Values(), "$100")
	assert.NotContains(t, sk.HTML, "Built by script")
}
