package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wrake"
)

// Ensure LoggingExtractor implements wrake.LinkExtractor.
var _ wrake.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with debug logging.
type LoggingExtractor struct {
	next   wrake.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next wrake.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractLinks(html string) (links []wrake.RawLink, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"links", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(html)
}
