package slog

import (
	"log/slog"

	"github.com/fwojciec/wrake/crawl"
)

// ProgressLogger returns a crawl.ProgressFunc that records each event.
// Failures log at warn level, everything else at info.
func ProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(ev crawl.ProgressEvent) {
		l := logger.With("crawl", ev.CrawlID, "level", ev.Level)
		switch ev.Type {
		case crawl.ProgressLevelStarted:
			l.Info("level started", "frontier", ev.Total)
		case crawl.ProgressFetched:
			l.Info("page fetched", "url", ev.URL)
		case crawl.ProgressFailed:
			l.Warn("page failed", "url", ev.URL, "err", ev.Error)
		case crawl.ProgressRetried:
			l.Info("fetch retried", "url", ev.URL, "attempt", ev.Attempt, "err", ev.Error)
		case crawl.ProgressFinished:
			l.Info("crawl finished", "levels", ev.Level)
		}
	}
}

// LogResult records the summary of a finished crawl.
func LogResult(logger *slog.Logger, result *crawl.Result, err error) {
	if result == nil {
		logger.Error("crawl aborted", "err", err)
		return
	}
	logger.Info("crawl summary",
		"crawl", result.ID,
		"levels", result.Levels,
		"fetched", result.Fetched,
		"failed", result.Failed,
		"discovered", result.Discovered,
		"err", err,
	)
}
