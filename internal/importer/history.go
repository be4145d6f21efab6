// internal/importer/history.go
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Actions recorded in history.
const (
	ActionKeep  = "keep"
	ActionSkip  = "skip"
	ActionError = "error"
)

// Record is one processed archive entry.
type Record struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Entry       string    `json:"entry"`
	Destination string    `json:"destination,omitempty"` // empty for skipped entries
	Action      string    `json:"action"`
	Reason      string    `json:"reason,omitempty"`
	CaptureDate string    `json:"capture_date,omitempty"`
	DateSource  string    `json:"date_source,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	DryRun      bool      `json:"dry_run"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryFilter specifies criteria for listing history.
type HistoryFilter struct {
	RunID  *string
	Action *string
	Limit  int
}

// Store persists import history.
//
//go:generate mockgen -source=history.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	Add(ctx context.Context, r *Record) error
	List(ctx context.Context, f HistoryFilter) ([]*Record, error)
}

// HistoryStore is the SQLite Store.
type HistoryStore struct {
	db *sql.DB
}

var _ Store = (*HistoryStore)(nil)

// NewHistoryStore creates a history store.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Add inserts a new history record.
func (s *HistoryStore) Add(ctx context.Context, r *Record) error {
	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO imports (run_id, source, entry, destination, action, reason,
			capture_date, date_source, size_bytes, dry_run, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.Entry, nullString(r.Destination), r.Action, nullString(r.Reason),
		nullString(r.CaptureDate), nullString(r.DateSource), r.SizeBytes, r.DryRun, now,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	return nil
}

// List returns history records matching the filter.
// Results are ordered by most recent first.
func (s *HistoryStore) List(ctx context.Context, f HistoryFilter) ([]*Record, error) {
	var conditions []string
	var args []any

	if f.RunID != nil {
		conditions = append(conditions, "run_id = ?")
		args = append(args, *f.RunID)
	}
	if f.Action != nil {
		conditions = append(conditions, "action = ?")
		args = append(args, *f.Action)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, run_id, source, entry, destination, action, reason,
		capture_date, date_source, size_bytes, dry_run, created_at
		FROM imports ` + whereClause + ` ORDER BY created_at DESC, id DESC`

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Record
	for rows.Next() {
		r := &Record{}
		var dest, reason, date, dateSource sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.Source, &r.Entry, &dest, &r.Action, &reason,
			&date, &dateSource, &r.SizeBytes, &r.DryRun, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		r.Destination = dest.String
		r.Reason = reason.String
		r.CaptureDate = date.String
		r.DateSource = dateSource.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return results, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
