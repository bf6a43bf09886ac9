// Package trafilatura extracts article content with markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/markdownizer"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements markdownizer.Extractor at compile time.
var _ markdownizer.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Fallback extraction is enabled and
// images are kept so the converted page matches what the reader saw.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeImages:  true,
			IncludeLinks:   true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*markdownizer.ExtractResult, error) {
	if rawHTML == "" {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}
	if result.ContentNode == nil {
		return nil, markdownizer.Errorf(markdownizer.ENOTFOUND, "trafilatura found no content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &markdownizer.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
		Strategy:    markdownizer.StrategyTrafilatura,
	}, nil
}
