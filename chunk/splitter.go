// Package chunk splits extracted documents into overlapping chunks.
package chunk

import (
	"strings"
	"unicode"

	"github.com/fwojciec/askweb"
)

// paragraphSeparator joins paragraphs in the text stream.
const paragraphSeparator = "\n\n"

// Ensure Splitter implements askweb.Chunker at compile time.
var _ askweb.Chunker = (*Splitter)(nil)

// Splitter windows a document's paragraph stream into chunks of at most
// size characters, with consecutive chunks sharing up to overlap characters.
type Splitter struct {
	size         int
	overlap      int
	titleContext bool
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithOverlap sets the number of characters shared by consecutive chunks.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithTitleContext prepends the document title and headings to the stream
// so the first chunk carries them as context.
func WithTitleContext(enabled bool) Option {
	return func(s *Splitter) {
		s.titleContext = enabled
	}
}

// NewSplitter creates a new Splitter with the given options.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{
		size:    askweb.DefaultChunkSize,
		overlap: askweb.DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for progress.
	if s.overlap >= s.size {
		s.overlap = s.size / 4
	}

	return s
}

// Split returns the chunks of doc. Documents without paragraphs yield none.
func (s *Splitter) Split(sourceURL string, doc *askweb.Document) []askweb.Chunk {
	if doc.IsEmpty() {
		return nil
	}

	text := []rune(s.stream(doc))
	n := len(text)

	var chunks []askweb.Chunk
	start := 0
	for start < n {
		end := min(start+s.size, n)
		if end < n {
			end = breakPoint(text, start, end, s.overlap)
		}

		chunks = append(chunks, askweb.Chunk{
			Text:      string(text[start:end]),
			SourceURL: sourceURL,
			Sequence:  len(chunks),
			Offset:    start,
		})

		if end == n {
			break
		}

		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = wordStart(text, next, end)
	}

	return chunks
}

// Stream returns the text that Split windows for doc.
func (s *Splitter) Stream(doc *askweb.Document) string {
	if doc.IsEmpty() {
		return ""
	}
	return s.stream(doc)
}

func (s *Splitter) stream(doc *askweb.Document) string {
	body := strings.Join(doc.Paragraphs, paragraphSeparator)
	if !s.titleContext {
		return body
	}

	var header []string
	if doc.Title != "" {
		header = append(header, "Title: "+doc.Title)
	}
	if len(doc.Headings) > 0 {
		header = append(header, "Sections: "+strings.Join(doc.Headings, "; "))
	}
	if len(header) == 0 {
		return body
	}
	return strings.Join(header, "\n") + paragraphSeparator + body
}

// breakPoint finds where a window [start, end) should end. It searches the
// second half of the window backwards for a paragraph break, then a sentence
// end, then whitespace, and falls back to end. The window always ends past
// start+overlap so the next window still shares overlap characters.
func breakPoint(text []rune, start, end, overlap int) int {
	floor := max(start+(end-start)/2, start+overlap+1)

	for i := end - 1; i > floor; i-- {
		if text[i] == '\n' && text[i-1] == '\n' {
			return i - 1
		}
	}
	for i := end - 1; i > floor; i-- {
		if unicode.IsSpace(text[i]) && isSentenceEnd(text[i-1]) {
			return i
		}
	}
	for i := end - 1; i > floor; i-- {
		if unicode.IsSpace(text[i]) {
			return i
		}
	}
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// wordStart moves pos forward to the first word start before limit.
// pos is returned unchanged if it already starts a word or none is found.
func wordStart(text []rune, pos, limit int) int {
	for i := pos; i < limit; i++ {
		if i == 0 || (unicode.IsSpace(text[i-1]) && !unicode.IsSpace(text[i])) {
			return i
		}
	}
	return pos
}
