// Package http implements markdownizer services over HTTP: a static page
// fetcher, a client for a remote conversion backend and the backend server.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/markdownizer"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout matches rod.DefaultFetchTimeout.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPageBytes caps the size of a fetched page.
const DefaultMaxPageBytes = 16 << 20

// DefaultUserAgent identifies the fetcher to the sites it reads.
const DefaultUserAgent = "markdownizer/1.0 (+https://github.com/fwojciec/markdownizer)"

// Ensure Fetcher implements markdownizer.Fetcher at compile time.
var _ markdownizer.Fetcher = (*Fetcher)(nil)

// Fetcher downloads pages without running their scripts; use rod.Fetcher for
// pages that build their content in the browser. Bodies are decoded to UTF-8
// from the charset the server or the document declares.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout bounds each request. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPageBytes limits how much of a response body is read.
func WithMaxPageBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxPageBytes,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch returns the page at url as UTF-8 HTML.
//
// Returns EINVALID for malformed URLs and non-HTML responses, ETOOLARGE for
// pages over the size limit and the code matching the status otherwise.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", markdownizer.Errorf(markdownizer.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", markdownizer.Errorf(markdownizer.StatusCode(resp.StatusCode), "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", markdownizer.Errorf(markdownizer.EINVALID, "%s is not an HTML page (%s)", url, contentType)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBytes+1), contentType)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return "", markdownizer.Errorf(markdownizer.ETOOLARGE, "page %s exceeds %d bytes", url, f.maxBytes)
	}

	return string(data), nil
}

// isHTML reports whether contentType names an HTML document. A missing
// header is accepted; many static hosts omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
