// Package pipeline runs the page conversion pipeline: fetch, extract,
// skeletonize, convert and rehydrate.
package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/markdownizer"
)

// Pipeline converts a single page. Only the skeleton leaves the process;
// the token table stays here until the Markdown skeleton comes back.
type Pipeline struct {
	Fetcher      markdownizer.Fetcher
	Extractor    markdownizer.Extractor
	Skeletonizer markdownizer.Skeletonizer
	Converter    markdownizer.ConversionService

	// Now returns the conversion time. Defaults to time.Now.
	Now func() time.Time
}

// ConvertURL fetches url and converts its article content.
func (p *Pipeline) ConvertURL(ctx context.Context, url, userID string) (*markdownizer.Page, error) {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.ConvertHTML(ctx, html, url, userID)
}

// ConvertHTML converts an already fetched page.
func (p *Pipeline) ConvertHTML(ctx context.Context, html, url, userID string) (*markdownizer.Page, error) {
	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	sk, err := p.Skeletonizer.Skeletonize(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	resp, err := p.Converter.ConvertSkeleton(ctx, &markdownizer.ConversionRequest{
		HTMLSkeleton: sk.HTML,
		URL:          url,
		UserID:       userID,
	})
	if err != nil {
		return nil, err
	}

	markdown, stats := markdownizer.RehydrateReport(resp.MarkdownSkeleton, sk.Tokens)

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	return &markdownizer.Page{
		URL:         url,
		Title:       extracted.Title,
		Strategy:    extracted.Strategy,
		Markdown:    markdown,
		ConvertedAt: now().UTC(),
		Tokens:      len(sk.Tokens),
		Missed:      stats.Missed,
		Dropped:     stats.Dropped,
	}, nil
}
