// Package goquery selects article content by its semantic HTML markup.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/markdownizer"
)

// ContentSelectors are tried in order; the first element with text wins.
var ContentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
}

// Ensure Extractor implements markdownizer.Extractor at compile time.
var _ markdownizer.Extractor = (*Extractor)(nil)

// Extractor returns the first semantic content element of a page.
type Extractor struct {
	selectors []string
}

// NewExtractor creates an Extractor using ContentSelectors.
func NewExtractor() *Extractor {
	return &Extractor{selectors: ContentSelectors}
}

// Extract returns the outer HTML of the first element matching one of the
// selectors. Returns ENOTFOUND when no selector matches an element that
// contains text.
func (e *Extractor) Extract(rawHTML string) (*markdownizer.ExtractResult, error) {
	if rawHTML == "" {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range e.selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
			continue
		}

		content, err := goquery.OuterHtml(sel)
		if err != nil {
			return nil, err
		}

		return &markdownizer.ExtractResult{
			Title:       pageTitle(doc),
			ContentHTML: content,
			Strategy:    markdownizer.StrategySemantic,
		}, nil
	}

	return nil, markdownizer.Errorf(markdownizer.ENOTFOUND, "no semantic content element")
}

// pageTitle returns the document title, falling back to the first heading.
func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
}
