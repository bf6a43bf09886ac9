package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/markdownizer"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages rendered before Chrome is restarted.
const DefaultMaxPages = 75

// instance is one launched Chrome process and the number of pages open in it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	open     int
	retired  bool
}

func (in *instance) shutdown() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// Browser hands out pages from a headless Chrome. Chrome's memory use only
// grows under load, so the process is replaced after maxPages rendered pages.
// A replaced process keeps running until its last open page is released.
// The replacement is launched without holding the lock; callers arriving in
// the meantime keep using the old process.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu         sync.Mutex
	current    *instance
	rendered   int64
	maxPages   int64
	bin        string
	closed     bool
	restarting bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithMaxPages sets the number of pages rendered before Chrome is restarted.
func WithMaxPages(n int64) BrowserOption {
	return func(b *Browser) {
		b.maxPages = n
	}
}

// WithBin uses the Chrome binary at path instead of looking one up.
func WithBin(path string) BrowserOption {
	return func(b *Browser) {
		b.bin = path
	}
}

// NewBrowser launches Chrome. Close must be called when the Browser is no
// longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(b)
	}

	in, err := b.launch()
	if err != nil {
		return nil, err
	}
	b.current = in
	return b, nil
}

// Page opens a blank tab. The returned release func closes the tab and
// counts it toward the restart threshold; it must be called exactly once.
func (b *Browser) Page() (*rod.Page, func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, nil, markdownizer.Errorf(markdownizer.EINVALID, "browser is closed")
	}
	var stale *instance
	if b.rendered >= b.maxPages && !b.restarting {
		b.restarting = true
		b.rendered = 0
		b.mu.Unlock()

		next, err := b.launch()

		b.mu.Lock()
		stale = b.swap(next, err)
		if b.closed {
			b.mu.Unlock()
			if stale != nil {
				_ = stale.shutdown()
			}
			return nil, nil, markdownizer.Errorf(markdownizer.EINVALID, "browser is closed")
		}
	}
	in := b.current
	in.open++
	b.mu.Unlock()

	if stale != nil {
		_ = stale.shutdown()
	}

	page, err := in.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.release(in, false)
		return nil, nil, fmt.Errorf("open page: %w", err)
	}

	release := func() {
		_ = page.Close()
		b.release(in, true)
	}
	return page, release, nil
}

func (b *Browser) release(in *instance, rendered bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	in.open--
	if rendered && in == b.current {
		b.rendered++
	}
	if in.retired && in.open == 0 {
		_ = in.shutdown()
	}
}

// swap installs a freshly launched instance and returns the instance that
// should be shut down, if any. When Chrome failed to start the old instance
// stays in service for another maxPages pages.
// Must be called with mu held.
func (b *Browser) swap(next *instance, err error) *instance {
	b.restarting = false
	if err != nil {
		return nil
	}
	if b.closed {
		return next
	}

	old := b.current
	b.current = next
	old.retired = true
	if old.open == 0 {
		return old
	}
	return nil
}

// launch starts Chrome with flags that keep background tabs rendering.
func (b *Browser) launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &instance{browser: browser, launcher: l}, nil
}

// Close shuts Chrome down. Pages still open fail. Close is safe to call
// multiple times.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.current.shutdown()
}

// LauncherPID returns the process ID of the current Chrome launcher.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	return b.current.launcher.PID()
}
