package mock

import "github.com/fwojciec/askweb"

var _ askweb.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of askweb.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*askweb.Document, error)
}

func (e *Extractor) Extract(html string) (*askweb.Document, error) {
	return e.ExtractFn(html)
}

var _ askweb.Converter = (*Converter)(nil)

// Converter is a mock implementation of askweb.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
