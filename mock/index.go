package mock

import (
	"context"

	"github.com/fwojciec/askweb"
)

var _ askweb.Index = (*Index)(nil)

// Index is a mock implementation of askweb.Index.
type Index struct {
	InsertFn func(ctx context.Context, chunks []askweb.Chunk) error
	EmbedFn  func(ctx context.Context, chunks []askweb.Chunk) ([]askweb.IndexedVector, error)
	AppendFn func(entries ...askweb.IndexedVector) error
	SearchFn func(ctx context.Context, query string, k int) ([]askweb.Match, error)
	LenFn    func() int
}

func (i *Index) Insert(ctx context.Context, chunks []askweb.Chunk) error {
	return i.InsertFn(ctx, chunks)
}

func (i *Index) Embed(ctx context.Context, chunks []askweb.Chunk) ([]askweb.IndexedVector, error) {
	return i.EmbedFn(ctx, chunks)
}

func (i *Index) Append(entries ...askweb.IndexedVector) error {
	return i.AppendFn(entries...)
}

func (i *Index) Search(ctx context.Context, query string, k int) ([]askweb.Match, error) {
	return i.SearchFn(ctx, query, k)
}

func (i *Index) Len() int {
	return i.LenFn()
}
