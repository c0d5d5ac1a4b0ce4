// Package google provides an askweb.SearchProvider backed by the Google
// Custom Search JSON API.
package google

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/askweb"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// maxPageSize is the largest page the API returns per request.
const maxPageSize = 10

// maxResults is the deepest result the API serves for one query.
const maxResults = 100

// Ensure SearchProvider implements askweb.SearchProvider at compile time.
var _ askweb.SearchProvider = (*SearchProvider)(nil)

// SearchProvider queries a Programmable Search Engine.
type SearchProvider struct {
	svc      *customsearch.Service
	engineID string
}

// NewSearchProvider creates a SearchProvider for the search engine cx.
// Additional client options are appended after the API key.
func NewSearchProvider(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*SearchProvider, error) {
	if apiKey == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "google API key required")
	}
	if cx == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "google search engine ID required")
	}

	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &SearchProvider{svc: svc, engineID: cx}, nil
}

// Search returns up to limit results, requesting further pages while the
// API has more. Returns ESEARCH if any request fails.
func (p *SearchProvider) Search(ctx context.Context, query string, limit int) ([]askweb.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "search query required")
	}
	if limit <= 0 {
		limit = askweb.DefaultResultLimit
	}
	limit = min(limit, maxResults)

	results := make([]askweb.SearchResult, 0, limit)
	for len(results) < limit {
		num := min(maxPageSize, limit-len(results))
		resp, err := p.svc.Cse.List().
			Q(query).
			Cx(p.engineID).
			Num(int64(num)).
			Start(int64(len(results) + 1)).
			Context(ctx).
			Do()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, searchError(err)
		}

		for _, item := range resp.Items {
			if item.Link == "" {
				continue
			}
			results = append(results, askweb.SearchResult{Title: item.Title, URL: item.Link})
		}
		if len(resp.Items) < num {
			break
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func searchError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			return askweb.Errorf(askweb.ESEARCH, "google search rate limit exceeded")
		case http.StatusForbidden, http.StatusUnauthorized:
			return askweb.Errorf(askweb.ESEARCH, "google search rejected credentials: %s", gerr.Message)
		}
		return askweb.Errorf(askweb.ESEARCH, "google search failed with status %d: %s", gerr.Code, gerr.Message)
	}
	return askweb.Errorf(askweb.ESEARCH, "google search failed: %v", err)
}
