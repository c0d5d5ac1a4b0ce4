package chunk_test

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Splitter implements askweb.Chunker at compile time.
var _ askweb.Chunker = (*chunk.Splitter)(nil)

const sourceURL = "https://example.com/article"

// sampleDocument returns a document with several paragraphs of short words
// and sentences, long enough to need many chunks at small sizes.
func sampleDocument() *askweb.Document {
	sentences := []string{
		"Jet fuel is a type of aviation fuel designed for use in aircraft powered by gas-turbine engines.",
		"It is colorless to straw-colored in appearance.",
		"The most commonly used fuels for commercial aviation are Jet A and Jet A-1.",
		"Both are produced to a standardized international specification.",
		"The only other jet fuel commonly used in civilian turbine-engine powered aviation is Jet B.",
		"Jet B is used for its enhanced cold-weather performance.",
	}
	var paragraphs []string
	for i := 0; i < 6; i++ {
		paragraphs = append(paragraphs, strings.Join(sentences[i%3:i%3+3], " "))
	}
	return &askweb.Document{
		Title:      "Jet fuel",
		Headings:   []string{"Types", "Additives"},
		Paragraphs: paragraphs,
	}
}

// reconstruct concatenates chunks after removing each overlap region.
func reconstruct(chunks []askweb.Chunk) string {
	var sb strings.Builder
	covered := 0
	for _, c := range chunks {
		runes := []rune(c.Text)
		skip := covered - c.Offset
		sb.WriteString(string(runes[skip:]))
		covered = c.Offset + len(runes)
	}
	return sb.String()
}

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("returns no chunks for empty document", func(t *testing.T) {
		t.Parallel()

		s := chunk.NewSplitter()

		assert.Empty(t, s.Split(sourceURL, &askweb.Document{}))
		assert.Empty(t, s.Split(sourceURL, &askweb.Document{Title: "Title only", Headings: []string{"H"}}))
		assert.Empty(t, s.Split(sourceURL, nil))
	})

	t.Run("returns single chunk for short document", func(t *testing.T) {
		t.Parallel()

		doc := &askweb.Document{Paragraphs: []string{"First paragraph.", "Second paragraph."}}

		chunks := chunk.NewSplitter().Split(sourceURL, doc)

		require.Len(t, chunks, 1)
		assert.Equal(t, askweb.Chunk{
			Text:      "First paragraph.\n\nSecond paragraph.",
			SourceURL: sourceURL,
			Sequence:  0,
			Offset:    0,
		}, chunks[0])
	})

	t.Run("reconstructs the paragraph stream after removing overlaps", func(t *testing.T) {
		t.Parallel()

		doc := sampleDocument()
		for _, cfg := range []struct{ size, overlap int }{
			{100, 20}, {150, 40}, {300, 100}, {1000, 150}, {64, 0},
		} {
			s := chunk.NewSplitter(chunk.WithChunkSize(cfg.size), chunk.WithOverlap(cfg.overlap))

			chunks := s.Split(sourceURL, doc)

			require.NotEmpty(t, chunks)
			assert.Equal(t, strings.Join(doc.Paragraphs, "\n\n"), reconstruct(chunks), "size=%d overlap=%d", cfg.size, cfg.overlap)
		}
	})

	t.Run("keeps chunks within the maximum size", func(t *testing.T) {
		t.Parallel()

		chunks := chunk.NewSplitter(chunk.WithChunkSize(120), chunk.WithOverlap(30)).Split(sourceURL, sampleDocument())

		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c.Text), 120)
		}
	})

	t.Run("numbers chunks in order with the source URL", func(t *testing.T) {
		t.Parallel()

		chunks := chunk.NewSplitter(chunk.WithChunkSize(120), chunk.WithOverlap(30)).Split(sourceURL, sampleDocument())

		for i, c := range chunks {
			assert.Equal(t, i, c.Sequence)
			assert.Equal(t, sourceURL, c.SourceURL)
			if i > 0 {
				assert.Greater(t, c.Offset, chunks[i-1].Offset)
			}
		}
	})

	t.Run("adjacent chunks share a suffix-prefix overlap within tolerance", func(t *testing.T) {
		t.Parallel()

		const overlap = 40
		chunks := chunk.NewSplitter(chunk.WithChunkSize(150), chunk.WithOverlap(overlap)).Split(sourceURL, sampleDocument())

		require.Greater(t, len(chunks), 1)
		for i := 1; i < len(chunks); i++ {
			prev := []rune(chunks[i-1].Text)
			shared := chunks[i-1].Offset + len(prev) - chunks[i].Offset

			assert.LessOrEqual(t, shared, overlap)
			assert.Greater(t, shared, 0)
			assert.True(t, strings.HasPrefix(chunks[i].Text, string(prev[len(prev)-shared:])))
		}
	})

	t.Run("breaks at boundaries rather than mid-word", func(t *testing.T) {
		t.Parallel()

		s := chunk.NewSplitter(chunk.WithChunkSize(100), chunk.WithOverlap(20))
		doc := sampleDocument()
		stream := []rune(s.Stream(doc))

		chunks := s.Split(sourceURL, doc)

		for _, c := range chunks[:len(chunks)-1] {
			end := c.Offset + utf8.RuneCountInString(c.Text)
			assert.True(t, unicode.IsSpace(stream[end]), "chunk %d ends mid-word", c.Sequence)
		}
		for _, c := range chunks[1:] {
			assert.False(t, unicode.IsSpace([]rune(c.Text)[0]), "chunk %d starts with whitespace", c.Sequence)
		}
	})

	t.Run("prefers paragraph boundary", func(t *testing.T) {
		t.Parallel()

		p1 := strings.Repeat("word ", 11) + "end."
		p2 := strings.Repeat("more ", 11) + "text."
		doc := &askweb.Document{Paragraphs: []string{p1, p2}}

		chunks := chunk.NewSplitter(chunk.WithChunkSize(100), chunk.WithOverlap(0)).Split(sourceURL, doc)

		require.Len(t, chunks, 2)
		assert.Equal(t, p1, chunks[0].Text)
		assert.Equal(t, "\n\n"+p2, chunks[1].Text)
	})

	t.Run("prefers sentence end over plain whitespace", func(t *testing.T) {
		t.Parallel()

		text := "One two three four five six seven. Eight nine ten eleven twelve thirteen fourteen"
		doc := &askweb.Document{Paragraphs: []string{text}}

		chunks := chunk.NewSplitter(chunk.WithChunkSize(60), chunk.WithOverlap(0)).Split(sourceURL, doc)

		require.Len(t, chunks, 2)
		assert.Equal(t, "One two three four five six seven.", chunks[0].Text)
	})

	t.Run("cuts hard when no boundary exists", func(t *testing.T) {
		t.Parallel()

		doc := &askweb.Document{Paragraphs: []string{strings.Repeat("x", 250)}}

		chunks := chunk.NewSplitter(chunk.WithChunkSize(100), chunk.WithOverlap(10)).Split(sourceURL, doc)

		require.Len(t, chunks, 3)
		assert.Len(t, chunks[0].Text, 100)
		assert.Equal(t, 90, chunks[1].Offset)
		assert.Equal(t, strings.Repeat("x", 250), reconstruct(chunks))
	})

	t.Run("keeps overlap larger than half the window", func(t *testing.T) {
		t.Parallel()

		// The only sentence break sits just past the middle of the first window.
		text := strings.Repeat("a", 50) + ". " + strings.Repeat("b", 150)
		doc := &askweb.Document{Paragraphs: []string{text}}

		chunks := chunk.NewSplitter(chunk.WithChunkSize(100), chunk.WithOverlap(60)).Split(sourceURL, doc)

		require.Greater(t, len(chunks), 1)
		for i := 1; i < len(chunks); i++ {
			prevEnd := chunks[i-1].Offset + utf8.RuneCountInString(chunks[i-1].Text)
			assert.Less(t, chunks[i].Offset, prevEnd, "chunk %d shares nothing with chunk %d", i, i-1)
		}
		assert.Equal(t, text, reconstruct(chunks))
	})

	t.Run("counts characters rather than bytes", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("café crème brûlée ", 20)
		doc := &askweb.Document{Paragraphs: []string{strings.TrimSpace(text)}}

		chunks := chunk.NewSplitter(chunk.WithChunkSize(50), chunk.WithOverlap(10)).Split(sourceURL, doc)

		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c.Text))
			assert.LessOrEqual(t, utf8.RuneCountInString(c.Text), 50)
		}
		assert.Equal(t, strings.TrimSpace(text), reconstruct(chunks))
	})

	t.Run("clamps overlap that is not smaller than size", func(t *testing.T) {
		t.Parallel()

		doc := sampleDocument()

		chunks := chunk.NewSplitter(chunk.WithChunkSize(80), chunk.WithOverlap(200)).Split(sourceURL, doc)

		require.NotEmpty(t, chunks)
		assert.Equal(t, strings.Join(doc.Paragraphs, "\n\n"), reconstruct(chunks))
	})

	t.Run("prepends title and headings when enabled", func(t *testing.T) {
		t.Parallel()

		s := chunk.NewSplitter(chunk.WithTitleContext(true))

		chunks := s.Split(sourceURL, sampleDocument())

		require.NotEmpty(t, chunks)
		assert.True(t, strings.HasPrefix(chunks[0].Text, "Title: Jet fuel\nSections: Types; Additives\n\n"))
		assert.Equal(t, s.Stream(sampleDocument()), reconstruct(chunks))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		s := chunk.NewSplitter(chunk.WithChunkSize(120), chunk.WithOverlap(30))

		assert.Equal(t, s.Split(sourceURL, sampleDocument()), s.Split(sourceURL, sampleDocument()))
	})
}
