//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/markdownizer/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processAlive reports whether pid exists; signal 0 performs only the check.
func processAlive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestBrowser_Close_KillsChrome(t *testing.T) {
	t.Parallel()

	browser, err := rod.NewBrowser()
	require.NoError(t, err)

	pid := browser.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, processAlive(pid))

	require.NoError(t, browser.Close())

	assert.Eventually(t, func() bool { return !processAlive(pid) }, 2*time.Second, 50*time.Millisecond)
}
