// Package sqlite persists submission records in a SQLite database (WAL mode)
// using the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-pmsform/pkg/submission"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	form_data TEXT NOT NULL,
	submitter_name TEXT NOT NULL DEFAULT '',
	target_timeline TEXT NOT NULL DEFAULT '',
	deployment_model TEXT NOT NULL DEFAULT '',
	multi_property_support INTEGER NOT NULL DEFAULT 0,
	white_labeled INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
`

// createdAtLayout is fixed width so that created_at sorts as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = `id, form_data, submitter_name, target_timeline, deployment_model,
	multi_property_support, white_labeled, created_at`

// Store implements submission.Gateway and submission.Reader on SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string, options ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	store := &Store{db: db, now: time.Now}
	for _, opt := range options {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// DB exposes the underlying handle, for example to export pool statistics.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts record under a fresh id.
func (s *Store) Create(ctx context.Context, record submission.Record) (submission.StoredRecord, error) {
	payload, err := json.Marshal(record.FormData)
	if err != nil {
		return submission.StoredRecord{}, fmt.Errorf("sqlite: encode form data: %w", err)
	}
	if record.FormData == nil {
		payload = []byte("{}")
	}

	stored := submission.StoredRecord{
		ID:        uuid.NewString(),
		Record:    record,
		CreatedAt: s.now().UTC(),
	}
	stored.Record.FormData = record.FormData.Clone()

	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions
		(id, form_data, submitter_name, target_timeline, deployment_model,
		 multi_property_support, white_labeled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, string(payload),
		record.SubmitterName, record.TargetTimeline, record.DeploymentModel,
		boolToInt(record.MultiPropertySupport), boolToInt(record.WhiteLabeled),
		stored.CreatedAt.Format(createdAtLayout),
	)
	if err != nil {
		return submission.StoredRecord{}, fmt.Errorf("sqlite: insert submission: %w", err)
	}
	return stored, nil
}

// Get returns the record stored under id, or submission.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (submission.StoredRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM submissions WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return submission.StoredRecord{}, fmt.Errorf("%w: %s", submission.ErrNotFound, id)
	}
	if err != nil {
		return submission.StoredRecord{}, fmt.Errorf("sqlite: get submission: %w", err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]submission.StoredRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM submissions
		ORDER BY created_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list submissions: %w", err)
	}
	defer rows.Close()

	var out []submission.StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan submission: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count submissions: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (submission.StoredRecord, error) {
	var (
		rec       submission.StoredRecord
		formData  string
		multi     int
		white     int
		createdAt string
	)
	if err := row.Scan(&rec.ID, &formData,
		&rec.Record.SubmitterName, &rec.Record.TargetTimeline, &rec.Record.DeploymentModel,
		&multi, &white, &createdAt); err != nil {
		return submission.StoredRecord{}, err
	}
	if err := json.Unmarshal([]byte(formData), &rec.Record.FormData); err != nil {
		return submission.StoredRecord{}, fmt.Errorf("decode form data: %w", err)
	}
	rec.Record.MultiPropertySupport = multi != 0
	rec.Record.WhiteLabeled = white != 0

	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return submission.StoredRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
