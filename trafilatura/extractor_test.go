package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPost = `<!DOCTYPE html>
<html>
<head>
<title>Why we moved to SQLite - Engineering Blog</title>
<meta property="og:title" content="Why we moved to SQLite">
</head>
<body>
<header><a href="/">Engineering Blog</a> <a href="/about">About</a></header>
<div class="layout">
<aside class="sidebar"><h3>Popular posts</h3><ul><li><a href="/a">Caching at scale</a></li></ul></aside>
<div class="post-body">
<h1>Why we moved to SQLite</h1>
<p>For years our service kept its state in a separate database cluster. Last spring we replaced it with an embedded SQLite file and never looked back.</p>
<p>The migration took two weeks. Most of that time went into rewriting queries that relied on server-side extensions.</p>
<pre><code>PRAGMA journal_mode = WAL;</code></pre>
</div>
</div>
<footer><p>Subscribe to our newsletter for weekly updates</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps the post body and drops page chrome", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(blogPost)

		require.NoError(t, err)
		assert.Equal(t, markdownizer.StrategyTrafilatura, result.Strategy)
		assert.Contains(t, result.Title, "Why we moved to SQLite")
		assert.Contains(t, result.ContentHTML, "embedded SQLite file")
		assert.Contains(t, result.ContentHTML, "journal_mode")
		assert.NotContains(t, result.ContentHTML, "Subscribe to our newsletter")
	})

	t.Run("accepts a bare paragraph", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(`<html><body><p>Just one paragraph of text.</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Just one paragraph of text.")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("")

		assert.Equal(t, markdownizer.EINVALID, markdownizer.ErrorCode(err))
	})
}
