package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageWriter_WritePage(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WritePageFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *markdownizer.Page
		w := &mock.PageWriter{
			WritePageFn: func(_ context.Context, page *markdownizer.Page) (string, error) {
				calledWith = page
				return "out/page.md", nil
			},
		}

		page := &markdownizer.Page{URL: "https://example.com/post", Title: "Post"}
		path, err := w.WritePage(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "out/page.md", path)
		assert.Same(t, page, calledWith)
	})

	t.Run("returns error from WritePageFn", func(t *testing.T) {
		t.Parallel()

		w := &mock.PageWriter{
			WritePageFn: func(context.Context, *markdownizer.Page) (string, error) {
				return "", errors.New("disk full")
			},
		}

		_, err := w.WritePage(context.Background(), &markdownizer.Page{URL: "https://example.com"})

		require.EqualError(t, err, "disk full")
	})
}

func TestMemoryIdentityStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := &mock.MemoryIdentityStore{}

	_, err := s.UserID(ctx)
	assert.Equal(t, markdownizer.ENOTFOUND, markdownizer.ErrorCode(err))

	require.NoError(t, s.SetUserID(ctx, "abc"))
	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
