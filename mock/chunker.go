package mock

import "github.com/fwojciec/askweb"

var _ askweb.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of askweb.Chunker.
type Chunker struct {
	SplitFn func(sourceURL string, doc *askweb.Document) []askweb.Chunk
}

func (c *Chunker) Split(sourceURL string, doc *askweb.Document) []askweb.Chunk {
	return c.SplitFn(sourceURL, doc)
}
