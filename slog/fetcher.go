package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/askweb"
)

// Ensure LoggingFetcher implements askweb.Fetcher.
var _ askweb.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   askweb.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next askweb.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
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

// Ensure LoggingExtractor implements askweb.Extractor.
var _ askweb.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   askweb.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next askweb.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was found.
func (e *LoggingExtractor) Extract(html string) (doc *askweb.Document, err error) {
	defer func(begin time.Time) {
		var title string
		var headings, paragraphs int
		if doc != nil {
			title, headings, paragraphs = doc.Title, len(doc.Headings), len(doc.Paragraphs)
		}
		e.logger.Debug("extract",
			"title", title,
			"headings", headings,
			"paragraphs", paragraphs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// NewRetryLogger returns a callback that logs each fetch retry.
func NewRetryLogger(logger *slog.Logger) func(url string, attempt int, err error) {
	return func(url string, attempt int, err error) {
		logger.Warn("fetch retry",
			"url", url,
			"attempt", attempt,
			"err", err,
		)
	}
}
