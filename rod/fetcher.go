// Package rod fetches JavaScript-rendered pages with a headless Chrome
// driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/markdownizer"
)

// DefaultFetchTimeout bounds navigation and rendering of a single page.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements markdownizer.Fetcher at compile time.
var _ markdownizer.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML, the DOM as the reader sees it after
// scripts ran. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *Browser
	timeout time.Duration
	closed  atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	timeout time.Duration
	browser []BrowserOption
}

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter restarts Chrome after n rendered pages.
func WithRecycleAfter(n int64) FetcherOption {
	return func(c *fetcherConfig) {
		c.browser = append(c.browser, WithMaxPages(n))
	}
}

// WithChromeBin uses the Chrome binary at path.
func WithChromeBin(path string) FetcherOption {
	return func(c *fetcherConfig) {
		if path != "" {
			c.browser = append(c.browser, WithBin(path))
		}
	}
}

// NewFetcher launches a headless Chrome and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	browser, err := NewBrowser(cfg.browser...)
	if err != nil {
		return nil, err
	}

	return &Fetcher{browser: browser, timeout: cfg.timeout}, nil
}

// Fetch navigates to url, waits for the load event and returns the
// serialized DOM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", markdownizer.Errorf(markdownizer.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.browser.Page()
	if err != nil {
		return "", err
	}
	defer release()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("load %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("serialize %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.Close()
}

// LauncherPID returns the process ID of the current Chrome launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.LauncherPID()
}
