package askweb

// Converter renders the readable part of an HTML page as Markdown.
type Converter interface {
	// Convert returns Markdown for the page's main content.
	// Returns EINVALID for empty input.
	Convert(html string) (string, error)
}
