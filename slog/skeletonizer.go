package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/markdownizer"
)

// Ensure LoggingSkeletonizer implements markdownizer.Skeletonizer.
var _ markdownizer.Skeletonizer = (*LoggingSkeletonizer)(nil)

// LoggingSkeletonizer wraps a Skeletonizer with logging. Token values are
// page content and are never logged; only their count is.
type LoggingSkeletonizer struct {
	next   markdownizer.Skeletonizer
	logger *slog.Logger
}

// NewLoggingSkeletonizer creates a new LoggingSkeletonizer.
func NewLoggingSkeletonizer(next markdownizer.Skeletonizer, logger *slog.Logger) *LoggingSkeletonizer {
	return &LoggingSkeletonizer{next: next, logger: logger}
}

// Skeletonize delegates to the wrapped skeletonizer.
func (s *LoggingSkeletonizer) Skeletonize(contentHTML string) (sk *markdownizer.Skeleton, err error) {
	defer func(begin time.Time) {
		tokens, size := 0, 0
		if sk != nil {
			tokens, size = len(sk.Tokens), len(sk.HTML)
		}
		s.logger.Info("skeletonize",
			"tokens", tokens,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Skeletonize(contentHTML)
}
