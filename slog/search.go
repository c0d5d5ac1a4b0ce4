// Package slog provides logging decorators for askweb capabilities.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/askweb"
)

// Ensure LoggingSearchProvider implements askweb.SearchProvider.
var _ askweb.SearchProvider = (*LoggingSearchProvider)(nil)

// LoggingSearchProvider wraps a SearchProvider with logging.
type LoggingSearchProvider struct {
	next   askweb.SearchProvider
	logger *slog.Logger
}

// NewLoggingSearchProvider creates a new LoggingSearchProvider.
func NewLoggingSearchProvider(next askweb.SearchProvider, logger *slog.Logger) *LoggingSearchProvider {
	return &LoggingSearchProvider{next: next, logger: logger}
}

// Search delegates to the wrapped provider and logs the operation.
func (p *LoggingSearchProvider) Search(ctx context.Context, query string, limit int) (results []askweb.SearchResult, err error) {
	defer func(begin time.Time) {
		p.logger.Info("search",
			"query", query,
			"limit", limit,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Search(ctx, query, limit)
}
