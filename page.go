package markdownizer

import (
	"context"
	"time"
)

// Page is a converted web page.
type Page struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Strategy    string    `json:"strategy"`
	Markdown    string    `json:"markdown"`
	ContentHash string    `json:"contentHash"`
	ConvertedAt time.Time `json:"convertedAt"`

	// Tokens, Missed and Dropped describe the rehydration of Markdown.
	Tokens  int `json:"tokens"`
	Missed  int `json:"missed"`
	Dropped int `json:"dropped"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageWriter writes converted pages somewhere durable for the user.
type PageWriter interface {
	// WritePage stores the page and returns the location it was written to.
	WritePage(ctx context.Context, page *Page) (string, error)
}
