package mock

import (
	"context"

	"github.com/fwojciec/markdownizer"
)

var _ markdownizer.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of markdownizer.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *markdownizer.Page) (string, error)
}

func (w *PageWriter) WritePage(ctx context.Context, page *markdownizer.Page) (string, error) {
	return w.WritePageFn(ctx, page)
}
