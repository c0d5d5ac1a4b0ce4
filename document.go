package askweb

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinParagraphLength is the length a paragraph must exceed, in
// characters after normalization, to be kept by an Extractor.
const DefaultMinParagraphLength = 50

// Document is the readable content extracted from a single HTML page.
// All text fields are whitespace-normalized and contain no markup.
type Document struct {
	Title      string   `json:"title"`
	Headings   []string `json:"headings"`
	Paragraphs []string `json:"paragraphs"`
}

// IsEmpty reports whether the document has no paragraphs to index.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Paragraphs) == 0
}

// Extractor turns raw HTML into a Document, removing boilerplate.
type Extractor interface {
	// Extract parses HTML and returns its structured content.
	// Returns EEXTRACT only if the input cannot be parsed as markup.
	// A page without usable content yields an empty Document, not an error.
	Extract(html string) (*Document, error)
}

// NormalizeSpace collapses runs of whitespace into a single space and trims
// leading and trailing whitespace.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// KeepParagraph reports whether normalized paragraph text is long enough
// to be kept. Text of exactly minLength characters is dropped.
func KeepParagraph(text string, minLength int) bool {
	return utf8.RuneCountInString(text) > minLength
}
