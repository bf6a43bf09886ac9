// Package htmltomarkdown converts HTML skeletons to Markdown with
// JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"context"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/markdownizer"
)

// Ensure Converter implements markdownizer.Converter at compile time.
var _ markdownizer.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", markdownizer.Errorf(markdownizer.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// Ensure Service implements markdownizer.ConversionService at compile time.
var _ markdownizer.ConversionService = (*Service)(nil)

// Service runs a Converter in-process so skeletons can be converted without
// a backend.
type Service struct {
	conv markdownizer.Converter
}

// NewService creates a Service backed by conv.
func NewService(conv markdownizer.Converter) *Service {
	return &Service{conv: conv}
}

// ConvertSkeleton converts the request's HTML skeleton to a Markdown skeleton.
func (s *Service) ConvertSkeleton(ctx context.Context, req *markdownizer.ConversionRequest) (*markdownizer.ConversionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.HTMLSkeleton) > markdownizer.MaxSkeletonBytes {
		return nil, markdownizer.Errorf(markdownizer.ETOOLARGE, "skeleton exceeds %d bytes", markdownizer.MaxSkeletonBytes)
	}

	md, err := s.conv.Convert(req.HTMLSkeleton)
	if err != nil {
		return nil, err
	}

	return &markdownizer.ConversionResponse{MarkdownSkeleton: md}, nil
}
