package askweb

import "context"

// DefaultResultLimit is the number of search results considered per query.
const DefaultResultLimit = 5

// SearchResult is a candidate page returned by a search backend.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SearchProvider finds candidate pages for a query.
type SearchProvider interface {
	// Search returns at most limit results in backend ranking order.
	// Returns ESEARCH if the backend cannot be reached.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// StaticSearchProvider returns a fixed list of URLs regardless of the query.
// It lets callers answer a question from pages they already know.
type StaticSearchProvider struct {
	URLs []string
}

// Search returns the configured URLs, truncated to limit.
func (p *StaticSearchProvider) Search(_ context.Context, _ string, limit int) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(p.URLs))
	for _, u := range p.URLs {
		if limit > 0 && len(results) == limit {
			break
		}
		results = append(results, SearchResult{URL: u})
	}
	return results, nil
}
