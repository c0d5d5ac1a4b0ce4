// Package goquery implements askweb.Extractor on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/askweb"
)

// noiseSelector matches subtrees that never contribute text.
const noiseSelector = "script, style, nav, header, footer, aside, " +
	"[role=navigation], [role=complementary]"

// mainSelectors are tried in order to find the main content root.
var mainSelectors = []string{"main", "article", "div.content"}

// Ensure Extractor implements askweb.Extractor at compile time.
var _ askweb.Extractor = (*Extractor)(nil)

// Extractor builds a Document from an HTML page: the page title, every
// h1-h3 heading, and the paragraphs of the main content region.
type Extractor struct {
	minParagraphLength int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinParagraphLength sets the length a paragraph must exceed to be kept.
// Defaults to askweb.DefaultMinParagraphLength.
func WithMinParagraphLength(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.minParagraphLength = n
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		minParagraphLength: askweb.DefaultMinParagraphLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML and returns its structured content.
func (e *Extractor) Extract(rawHTML string) (*askweb.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, askweb.Errorf(askweb.EEXTRACT, "failed to parse HTML: %v", err)
	}

	// Noise must be gone before any text is read.
	doc.Find(noiseSelector).Remove()

	result := &askweb.Document{
		Title:      askweb.NormalizeSpace(doc.Find("title").First().Text()),
		Headings:   []string{},
		Paragraphs: []string{},
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := askweb.NormalizeSpace(sel.Text()); text != "" {
			result.Headings = append(result.Headings, text)
		}
	})

	mainContentRoot(doc).Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := askweb.NormalizeSpace(sel.Text())
		if askweb.KeepParagraph(text, e.minParagraphLength) {
			result.Paragraphs = append(result.Paragraphs, text)
		}
	})

	return result, nil
}

// mainContentRoot returns the first main content region found,
// or the whole document if there is none.
func mainContentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}
