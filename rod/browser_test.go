//go:build integration

package rod_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser_Page(t *testing.T) {
	t.Parallel()

	t.Run("restarts after max pages", func(t *testing.T) {
		t.Parallel()

		browser, err := rod.NewBrowser(rod.WithMaxPages(2))
		require.NoError(t, err)
		defer browser.Close()

		first := browser.LauncherPID()
		for range 2 {
			_, release, err := browser.Page()
			require.NoError(t, err)
			release()
		}
		assert.Equal(t, first, browser.LauncherPID())

		_, release, err := browser.Page()
		require.NoError(t, err)
		release()

		assert.NotEqual(t, first, browser.LauncherPID())
	})

	t.Run("keeps a retired instance alive for open pages", func(t *testing.T) {
		t.Parallel()

		browser, err := rod.NewBrowser(rod.WithMaxPages(1))
		require.NoError(t, err)
		defer browser.Close()

		held, releaseHeld, err := browser.Page()
		require.NoError(t, err)

		_, release, err := browser.Page()
		require.NoError(t, err)
		release()

		_, release, err = browser.Page()
		require.NoError(t, err)
		release()

		_, err = held.Eval(`() => 1 + 1`)
		require.NoError(t, err)
		releaseHeld()
	})

	t.Run("serves other callers while a replacement launches", func(t *testing.T) {
		t.Parallel()

		chrome, ok := launcher.LookPath()
		if !ok {
			t.Skip("chrome not found")
		}
		dir := t.TempDir()
		marker := filepath.Join(dir, "launched")
		script := filepath.Join(dir, "slow-chrome")
		body := fmt.Sprintf("#!/bin/sh\nif [ -e %q ]; then sleep 3; fi\ntouch %q\nexec %q \"$@\"\n", marker, marker, chrome)
		require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

		browser, err := rod.NewBrowser(rod.WithMaxPages(1), rod.WithBin(script))
		require.NoError(t, err)
		defer browser.Close()

		first := browser.LauncherPID()
		_, release, err := browser.Page()
		require.NoError(t, err)
		release()

		done := make(chan error, 1)
		go func() {
			_, release, err := browser.Page()
			if err == nil {
				release()
			}
			done <- err
		}()

		time.Sleep(500 * time.Millisecond)
		start := time.Now()
		_, releaseOld, err := browser.Page()
		require.NoError(t, err)
		releaseOld()
		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Equal(t, first, browser.LauncherPID())

		require.NoError(t, <-done)
		assert.NotEqual(t, first, browser.LauncherPID())
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		browser, err := rod.NewBrowser()
		require.NoError(t, err)
		require.NoError(t, browser.Close())

		_, _, err = browser.Page()

		assert.Equal(t, markdownizer.EINVALID, markdownizer.ErrorCode(err))
		assert.Zero(t, browser.LauncherPID())
	})
}
