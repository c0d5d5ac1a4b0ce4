package mock

import (
	"context"

	"github.com/fwojciec/askweb"
)

var _ askweb.SearchProvider = (*SearchProvider)(nil)

// SearchProvider is a mock implementation of askweb.SearchProvider.
type SearchProvider struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]askweb.SearchResult, error)
}

func (s *SearchProvider) Search(ctx context.Context, query string, limit int) ([]askweb.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}
