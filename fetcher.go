package markdownizer

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to get the rendered page.
type Fetcher interface {
	// Fetch returns the HTML of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
