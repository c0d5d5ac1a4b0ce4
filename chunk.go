package askweb

import "context"

// Default chunking parameters, in characters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

// Chunk is a bounded slice of extracted text and the unit of retrieval.
type Chunk struct {
	Text      string `json:"text"`
	SourceURL string `json:"sourceUrl"`

	// Sequence is the chunk's position within its source document.
	Sequence int `json:"sequence"`

	// Offset is the character offset of Text within the source text stream.
	// Consecutive chunks overlap where Offset is less than the previous
	// chunk's Offset plus its length.
	Offset int `json:"offset"`
}

// Chunker splits a document into overlapping chunks sized for embedding.
type Chunker interface {
	// Split returns the chunks of doc in order. A document without
	// paragraphs yields no chunks.
	Split(sourceURL string, doc *Document) []Chunk
}

// IndexedVector pairs a chunk with its embedding.
type IndexedVector struct {
	Chunk  Chunk
	Vector []float32
}

// Match is a chunk returned by a similarity search with its score.
type Match struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Index is an in-memory similarity index scoped to a single query.
type Index interface {
	// Insert embeds chunks and appends them to the index. Either every
	// chunk is appended or none is. Safe for concurrent use.
	// Returns EEMBED if the embedder fails or returns malformed vectors.
	Insert(ctx context.Context, chunks []Chunk) error

	// Embed computes vectors for chunks without modifying the index.
	Embed(ctx context.Context, chunks []Chunk) ([]IndexedVector, error)

	// Append adds pre-computed entries to the index in order.
	// Returns EEMBED if a vector does not match the index dimensionality.
	Append(entries ...IndexedVector) error

	// Search returns up to k chunks ordered by descending similarity to
	// query. Ties keep insertion order. An empty index returns no matches.
	Search(ctx context.Context, query string, k int) ([]Match, error)

	// Len returns the number of indexed chunks.
	Len() int
}
