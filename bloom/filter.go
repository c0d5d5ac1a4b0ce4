// Package bloom provides URL deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// URLSet records URLs that have been seen. Membership is checked against a
// Bloom filter first; a filter hit is confirmed exactly, so Add never
// rejects a URL that was not added before.
type URLSet struct {
	f    *bloom.BloomFilter
	urls map[string]struct{}
}

// NewURLSet creates a URLSet sized for n expected URLs with the given
// filter false positive rate.
func NewURLSet(n uint, fpRate float64) *URLSet {
	return &URLSet{
		f:    bloom.NewWithEstimates(max(n, 1), fpRate),
		urls: make(map[string]struct{}, n),
	}
}

// Add records url and reports whether it was new.
func (s *URLSet) Add(url string) bool {
	if s.f.TestString(url) {
		if _, ok := s.urls[url]; ok {
			return false
		}
	}
	s.f.AddString(url)
	s.urls[url] = struct{}{}
	return true
}

// Contains reports whether url has been added.
func (s *URLSet) Contains(url string) bool {
	if !s.f.TestString(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of distinct URLs added.
func (s *URLSet) Len() int {
	return len(s.urls)
}
