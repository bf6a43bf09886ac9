package mock

import (
	"context"

	"github.com/fwojciec/markdownizer"
)

var _ markdownizer.Converter = (*Converter)(nil)

// Converter is a mock implementation of markdownizer.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ markdownizer.ConversionService = (*ConversionService)(nil)

// ConversionService is a mock implementation of markdownizer.ConversionService.
type ConversionService struct {
	ConvertSkeletonFn func(ctx context.Context, req *markdownizer.ConversionRequest) (*markdownizer.ConversionResponse, error)
}

func (s *ConversionService) ConvertSkeleton(ctx context.Context, req *markdownizer.ConversionRequest) (*markdownizer.ConversionResponse, error) {
	return s.ConvertSkeletonFn(ctx, req)
}
