// Package readability provides an askweb.Extractor that isolates the
// article body of a page with go-readability before reading its structure.
package readability

import (
	"strings"

	"github.com/fwojciec/askweb"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements askweb.Extractor at compile time.
var _ askweb.Extractor = (*Extractor)(nil)

// Extractor narrows a page to its article body with readability and then
// hands the body to a structural extractor.
type Extractor struct {
	structure askweb.Extractor
}

// NewExtractor creates a new Extractor.
func NewExtractor(structure askweb.Extractor) *Extractor {
	return &Extractor{structure: structure}
}

// Extract returns the structured article content of rawHTML.
// Returns EEXTRACT if readability cannot parse the page.
func (e *Extractor) Extract(rawHTML string) (*askweb.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return e.structure.Extract(rawHTML)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, askweb.Errorf(askweb.EEXTRACT, "readability: %v", err)
	}

	doc, err := e.structure.Extract(article.Content)
	if err != nil {
		return nil, err
	}
	if title := askweb.NormalizeSpace(article.Title); title != "" {
		doc.Title = title
	}
	return doc, nil
}
