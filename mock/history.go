package mock

import (
	"context"

	"github.com/fwojciec/askweb"
)

var _ askweb.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of askweb.HistoryService.
type HistoryService struct {
	CreateRecordFn   func(ctx context.Context, rec *askweb.QueryRecord) error
	FindRecordByIDFn func(ctx context.Context, id string) (*askweb.QueryRecord, error)
	FindRecordsFn    func(ctx context.Context, filter askweb.HistoryFilter) ([]*askweb.QueryRecord, error)
	DeleteRecordsFn  func(ctx context.Context) error
}

func (s *HistoryService) CreateRecord(ctx context.Context, rec *askweb.QueryRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *HistoryService) FindRecordByID(ctx context.Context, id string) (*askweb.QueryRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *HistoryService) FindRecords(ctx context.Context, filter askweb.HistoryFilter) ([]*askweb.QueryRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *HistoryService) DeleteRecords(ctx context.Context) error {
	return s.DeleteRecordsFn(ctx)
}
