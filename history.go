package askweb

import (
	"context"
	"time"
)

// QueryRecord is a past question with the answer it produced.
// Records are kept for review only and are never used to answer queries.
type QueryRecord struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Sources    []string  `json:"sources"`
	Considered int       `json:"considered"`
	Failed     int       `json:"failed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *QueryRecord) Validate() error {
	if r.Question == "" {
		return Errorf(EINVALID, "query record question required")
	}
	return nil
}

// NewQueryRecord builds a record from a completed answer.
func NewQueryRecord(a *Answer) *QueryRecord {
	return &QueryRecord{
		Question:   a.Question,
		Answer:     a.Text,
		Sources:    a.Sources,
		Considered: a.Considered,
		Failed:     len(a.Failures),
	}
}

// HistoryService represents a service for managing query history.
type HistoryService interface {
	// CreateRecord saves a new record, assigning its ID and timestamp.
	CreateRecord(ctx context.Context, record *QueryRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*QueryRecord, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter HistoryFilter) ([]*QueryRecord, error)

	// DeleteRecords removes all records.
	DeleteRecords(ctx context.Context) error
}

// HistoryFilter represents a filter for FindRecords.
type HistoryFilter struct {
	// Question matches records whose question contains this substring.
	Question *string `json:"question"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
