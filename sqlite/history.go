package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/askweb"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ askweb.HistoryService = (*HistoryService)(nil)

// HistoryService implements askweb.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateRecord saves a new query record.
func (s *HistoryService) CreateRecord(ctx context.Context, record *askweb.QueryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	sources := record.Sources
	if sources == nil {
		sources = []string{}
	}
	encoded, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to encode sources: %w", err)
	}

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, question, answer, sources, considered, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Question, record.Answer, string(encoded), record.Considered, record.Failed,
		formatTime(record.CreatedAt))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *HistoryService) FindRecordByID(ctx context.Context, id string) (*askweb.QueryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, answer, sources, considered, failed, created_at
		FROM history
		WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, askweb.Errorf(askweb.ENOTFOUND, "query record not found")
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *HistoryService) FindRecords(ctx context.Context, filter askweb.HistoryFilter) ([]*askweb.QueryRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, question, answer, sources, considered, failed, created_at FROM history WHERE 1=1")

	if filter.Question != nil {
		query.WriteString(" AND instr(lower(question), lower(?)) > 0")
		args = append(args, *filter.Question)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*askweb.QueryRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteRecords removes every stored record.
func (s *HistoryService) DeleteRecords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*askweb.QueryRecord, error) {
	var record askweb.QueryRecord
	var sources, createdAt string

	if err := row.Scan(&record.ID, &record.Question, &record.Answer, &sources,
		&record.Considered, &record.Failed, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sources), &record.Sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}

	var err error
	record.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &record, nil
}
