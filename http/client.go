package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/markdownizer"
)

// DefaultClientTimeout bounds a single conversion round trip.
const DefaultClientTimeout = 30 * time.Second

// UserIDHeader carries the persistent user ID on conversion requests.
const UserIDHeader = "X-User-ID"

// Ensure Client implements markdownizer.ConversionService at compile time.
var _ markdownizer.ConversionService = (*Client)(nil)

// Client sends skeletons to a remote conversion backend.
type Client struct {
	endpoint string
	origin   string
	client   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithOrigin sets the Origin header sent with every request. Backends that
// restrict callers by origin reject requests without one.
func WithOrigin(origin string) ClientOption {
	return func(c *Client) {
		c.origin = origin
	}
}

// NewClient creates a Client that posts to endpoint, the full URL of the
// backend's convert route.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertSkeleton posts the request as JSON and decodes the Markdown skeleton.
func (c *Client) ConvertSkeleton(ctx context.Context, req *markdownizer.ConversionRequest) (*markdownizer.ConversionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "invalid API URL %q", c.endpoint)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.UserID != "" {
		httpReq.Header.Set(UserIDHeader, req.UserID)
	}
	if c.origin != "" {
		httpReq.Header.Set("Origin", c.origin)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, markdownizer.Errorf(markdownizer.EUNAVAILABLE, "Could not reach server. Check your connection.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var out markdownizer.ConversionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, markdownizer.Errorf(markdownizer.EINTERNAL, "malformed response from server: %v", err)
	}
	return &out, nil
}

// statusError converts a non-2xx response into an application error with a
// user-facing message.
func statusError(resp *http.Response) error {
	technical := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e errorResponse
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		technical = e.Error
	}

	return markdownizer.Errorf(markdownizer.StatusCode(resp.StatusCode), "%s", markdownizer.StatusMessage(resp.StatusCode, technical))
}
