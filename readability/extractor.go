// Package readability extracts article content with go-shiori/go-readability.
// It is the fallback for pages without semantic content markup.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/markdownizer"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements markdownizer.Extractor at compile time.
var _ markdownizer.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scores the page and returns the most likely article content.
func (e *Extractor) Extract(rawHTML string) (*markdownizer.ExtractResult, error) {
	if rawHTML == "" {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, markdownizer.Errorf(markdownizer.ENOTFOUND, "readability found no content")
	}

	return &markdownizer.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Strategy:    markdownizer.StrategyReadability,
	}, nil
}
