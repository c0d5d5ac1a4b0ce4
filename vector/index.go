// Package vector provides an in-memory similarity index using brute-force
// cosine similarity. An index is meant to live for a single query, holding
// tens to hundreds of chunks, so a linear scan is sufficient.
package vector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/askweb"
)

// Ensure Index implements askweb.Index at compile time.
var _ askweb.Index = (*Index)(nil)

// Index stores chunks with their embeddings.
// Index is safe for concurrent use by multiple goroutines.
type Index struct {
	embedder askweb.Embedder

	mu      sync.RWMutex
	dim     int
	entries []askweb.IndexedVector

	// memo holds vectors by text hash so identical chunk texts from
	// different pages are embedded once per index.
	memoMu sync.Mutex
	memo   map[uint64][]float32
}

// NewIndex creates an empty Index that embeds text with embedder.
func NewIndex(embedder askweb.Embedder) *Index {
	return &Index{
		embedder: embedder,
		memo:     make(map[uint64][]float32),
	}
}

// Insert embeds chunks and appends them. Nothing is appended on failure.
func (ix *Index) Insert(ctx context.Context, chunks []askweb.Chunk) error {
	entries, err := ix.Embed(ctx, chunks)
	if err != nil {
		return err
	}
	return ix.Append(entries...)
}

// Embed computes one vector per chunk without modifying the index.
func (ix *Index) Embed(ctx context.Context, chunks []askweb.Chunk) ([]askweb.IndexedVector, error) {
	entries := make([]askweb.IndexedVector, 0, len(chunks))
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := ix.embed(ctx, c.Text)
		if err != nil {
			return nil, err
		}
		entries = append(entries, askweb.IndexedVector{Chunk: c, Vector: vec})
	}
	return entries, nil
}

// Append adds entries in order. The first vector appended fixes the
// dimensionality of the index. Either all entries are appended or none.
func (ix *Index) Append(entries ...askweb.IndexedVector) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	dim := ix.dim
	for _, e := range entries {
		if len(e.Vector) == 0 {
			return askweb.Errorf(askweb.EEMBED, "empty embedding for chunk %d of %s", e.Chunk.Sequence, e.Chunk.SourceURL)
		}
		if dim == 0 {
			dim = len(e.Vector)
		}
		if len(e.Vector) != dim {
			return askweb.Errorf(askweb.EEMBED, "embedding dimension %d does not match index dimension %d", len(e.Vector), dim)
		}
	}

	ix.dim = dim
	ix.entries = append(ix.entries, entries...)
	return nil
}

// Search returns up to k chunks most similar to query, best first.
// Entries with equal scores keep insertion order.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]askweb.Match, error) {
	if k <= 0 {
		return nil, askweb.Errorf(askweb.EINVALID, "k must be positive, got %d", k)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return []askweb.Match{}, nil
	}

	qvec, err := ix.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(qvec) != ix.dim {
		return nil, askweb.Errorf(askweb.EEMBED, "query embedding dimension %d does not match index dimension %d", len(qvec), ix.dim)
	}

	matches := make([]askweb.Match, len(ix.entries))
	for i, e := range ix.entries {
		matches[i] = askweb.Match{Chunk: e.Chunk, Score: CosineSimilarity(qvec, e.Vector)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Dimension returns the vector dimensionality, or 0 if the index is empty.
func (ix *Index) Dimension() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.dim
}

// embed returns the vector for text, reusing a previous result for
// identical text.
func (ix *Index) embed(ctx context.Context, text string) ([]float32, error) {
	key := xxhash.Sum64String(text)

	ix.memoMu.Lock()
	vec, ok := ix.memo[key]
	ix.memoMu.Unlock()
	if ok {
		return vec, nil
	}

	vec, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		if askweb.ErrorCode(err) == askweb.EEMBED {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, askweb.Errorf(askweb.EEMBED, "embedding failed: %v", err)
	}
	if len(vec) == 0 {
		return nil, askweb.Errorf(askweb.EEMBED, "embedder returned an empty vector")
	}

	ix.memoMu.Lock()
	ix.memo[key] = vec
	ix.memoMu.Unlock()
	return vec, nil
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Returns 0 if either vector has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
