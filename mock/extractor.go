package mock

import "github.com/fwojciec/markdownizer"

var _ markdownizer.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of markdownizer.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*markdownizer.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*markdownizer.ExtractResult, error) {
	return e.ExtractFn(html)
}
