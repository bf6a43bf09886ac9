package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/markdownizer"
)

// Ensure LoggingConversionService implements markdownizer.ConversionService.
var _ markdownizer.ConversionService = (*LoggingConversionService)(nil)

// LoggingConversionService wraps a ConversionService with logging.
type LoggingConversionService struct {
	next   markdownizer.ConversionService
	logger *slog.Logger
}

// NewLoggingConversionService creates a new LoggingConversionService.
func NewLoggingConversionService(next markdownizer.ConversionService, logger *slog.Logger) *LoggingConversionService {
	return &LoggingConversionService{next: next, logger: logger}
}

// ConvertSkeleton delegates to the wrapped service.
func (s *LoggingConversionService) ConvertSkeleton(ctx context.Context, req *markdownizer.ConversionRequest) (resp *markdownizer.ConversionResponse, err error) {
	defer func(begin time.Time) {
		out := 0
		if resp != nil {
			out = len(resp.MarkdownSkeleton)
		}
		s.logger.Info("convert",
			"url", req.URL,
			"in", len(req.HTMLSkeleton),
			"out", out,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ConvertSkeleton(ctx, req)
}
