// Package trafilatura provides an askweb.Extractor that isolates the main
// content of a page with go-trafilatura before reading its structure.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/askweb"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements askweb.Extractor at compile time.
var _ askweb.Extractor = (*Extractor)(nil)

// Extractor narrows a page to its main content with trafilatura and then
// hands the content to a structural extractor for headings and paragraphs.
type Extractor struct {
	structure askweb.Extractor
}

// NewExtractor creates a new Extractor. structure reads the title,
// headings and paragraphs from the narrowed HTML.
func NewExtractor(structure askweb.Extractor) *Extractor {
	return &Extractor{structure: structure}
}

// Extract returns the structured main content of rawHTML. Pages where
// trafilatura finds no main content are read whole by the structural
// extractor.
func (e *Extractor) Extract(rawHTML string) (*askweb.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return e.structure.Extract(rawHTML)
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil || result == nil || result.ContentNode == nil {
		return e.structure.Extract(rawHTML)
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, askweb.Errorf(askweb.EEXTRACT, "rendering main content: %v", err)
	}

	doc, err := e.structure.Extract(contentHTML)
	if err != nil {
		return nil, err
	}
	if title := askweb.NormalizeSpace(result.Metadata.Title); title != "" {
		doc.Title = title
	}
	return doc, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
