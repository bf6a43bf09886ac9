package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestIdentityStore(t *testing.T) {
	t.Parallel()

	t.Run("returns not found when empty", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewIdentityStore(openDB(t))
		_, err := store.UserID(context.Background())

		require.Error(t, err)
		assert.Equal(t, markdownizer.ENOTFOUND, markdownizer.ErrorCode(err))
	})

	t.Run("stores and replaces the user ID", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := sqlite.NewIdentityStore(openDB(t))

		require.NoError(t, store.SetUserID(ctx, "first"))
		require.NoError(t, store.SetUserID(ctx, "second"))

		id, err := store.UserID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", id)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := t.TempDir() + "/state.db"

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewIdentityStore(db).SetUserID(ctx, "persisted"))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		id, err := sqlite.NewIdentityStore(db).UserID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "persisted", id)
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewIdentityStore(openDB(t)).SetUserID(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, markdownizer.EINVALID, markdownizer.ErrorCode(err))
	})
}
