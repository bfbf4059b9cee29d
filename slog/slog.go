// Package slog provides logging decorators for domsift services.
// Each decorator logs one line per call with its duration and error.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/domsift"
)

// Ensure LoggingFetcher implements domsift.Fetcher.
var _ domsift.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every fetch.
type LoggingFetcher struct {
	next   domsift.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next domsift.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL, response size and outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingReducer implements domsift.Reducer.
var _ domsift.Reducer = (*LoggingReducer)(nil)

// LoggingReducer wraps a Reducer and logs reduction results.
type LoggingReducer struct {
	next   domsift.Reducer
	logger *slog.Logger
}

// NewLoggingReducer creates a new LoggingReducer.
func NewLoggingReducer(next domsift.Reducer, logger *slog.Logger) *LoggingReducer {
	return &LoggingReducer{next: next, logger: logger}
}

// Reduce logs input size, preserved element count and reduction.
func (r *LoggingReducer) Reduce(html string) (report *domsift.Report, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"input_bytes", len(html),
			"duration", time.Since(begin),
		}
		if report != nil {
			attrs = append(attrs,
				"elements", report.Stats.TotalElementsFound,
				"reduction_percent", report.ReductionPercent,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", domsift.ErrorCode(err), "err", err)
		}
		r.logger.Info("reduce", attrs...)
	}(time.Now())
	return r.next.Reduce(html)
}

// Ensure LoggingLoader implements domsift.Loader.
var _ domsift.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader and logs each source read.
type LoggingLoader struct {
	next   domsift.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next domsift.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load logs the source, size and outcome.
func (l *LoggingLoader) Load(ctx context.Context, source string) (html string, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("load",
			"source", source,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, source)
}
