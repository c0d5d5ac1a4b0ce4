package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/askweb"
)

// DefaultSearchURL is the DuckDuckGo HTML endpoint, which serves results
// without JavaScript or an API key.
const DefaultSearchURL = "https://html.duckduckgo.com/html/"

// Ensure SearchProvider implements askweb.SearchProvider at compile time.
var _ askweb.SearchProvider = (*SearchProvider)(nil)

// SearchProvider queries the DuckDuckGo HTML interface and parses the
// result page.
type SearchProvider struct {
	// BaseURL is the search endpoint. Defaults to DefaultSearchURL.
	BaseURL string

	client    *http.Client
	userAgent string
}

// NewSearchProvider creates a SearchProvider. It accepts the same options
// as NewFetcher.
func NewSearchProvider(opts ...Option) *SearchProvider {
	f := NewFetcher(opts...)
	return &SearchProvider{
		BaseURL:   DefaultSearchURL,
		client:    f.client,
		userAgent: f.userAgent,
	}
}

// Search returns up to limit organic results in page order.
// Advertisements are skipped. Returns ESEARCH if the request fails or the
// endpoint responds with anything other than 200.
func (p *SearchProvider) Search(ctx context.Context, query string, limit int) ([]askweb.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "search query required")
	}

	endpoint, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, askweb.Errorf(askweb.ESEARCH, "invalid search endpoint %q: %v", p.BaseURL, err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, askweb.Errorf(askweb.ESEARCH, "building search request: %v", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, askweb.Errorf(askweb.ESEARCH, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	// DuckDuckGo answers throttled clients with 202 and a challenge page.
	if resp.StatusCode != http.StatusOK {
		return nil, askweb.Errorf(askweb.ESEARCH, "search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, askweb.Errorf(askweb.ESEARCH, "parsing search results: %v", err)
	}

	return ParseResults(doc, limit), nil
}

// ParseResults extracts organic results from a DuckDuckGo HTML page.
// A non-positive limit returns every result.
func ParseResults(doc *goquery.Document, limit int) []askweb.SearchResult {
	results := []askweb.SearchResult{}
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(results) >= limit {
			return false
		}
		if s.HasClass("result--ad") {
			return true
		}

		a := s.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		target := resolveRedirect(href)
		if target == "" {
			return true
		}

		results = append(results, askweb.SearchResult{
			Title: askweb.NormalizeSpace(a.Text()),
			URL:   target,
		})
		return true
	})
	return results
}

// resolveRedirect returns the destination of a DuckDuckGo redirect link,
// or href itself when it already points elsewhere. Returns "" for links
// that are neither absolute HTTP(S) URLs nor redirects.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") {
		return ""
	}
	return href
}
