package pipeline

import (
	"strings"

	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/bloom"
)

// urlFalsePositiveRate is the Bloom filter error rate for result dedup.
const urlFalsePositiveRate = 0.001

// uniqueURLs returns the result URLs in order with fragments stripped,
// dropping empty and repeated URLs. URLs differing only by fragment are
// duplicates.
func uniqueURLs(results []askweb.SearchResult) []string {
	urls := make([]string, 0, len(results))
	if len(results) == 0 {
		return urls
	}

	seen := bloom.NewURLSet(uint(len(results)), urlFalsePositiveRate)
	for _, r := range results {
		url := strings.TrimSpace(r.URL)
		if idx := strings.Index(url, "#"); idx != -1 {
			url = url[:idx]
		}
		if url == "" {
			continue
		}
		if seen.Add(url) {
			urls = append(urls, url)
		}
	}
	return urls
}
