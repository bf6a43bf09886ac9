package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/markdownizer"
)

// Ensure LoggingExtractor implements markdownizer.Extractor.
var _ markdownizer.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which strategy found content.
type LoggingExtractor struct {
	next   markdownizer.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next markdownizer.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) (result *markdownizer.ExtractResult, err error) {
	defer func(begin time.Time) {
		strategy, size := "(none)", 0
		if result != nil {
			strategy, size = result.Strategy, len(result.ContentHTML)
		}
		e.logger.Info("extract",
			"strategy", strategy,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
