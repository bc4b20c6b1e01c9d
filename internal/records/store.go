// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records persists AnalysisRecords: one row per uploaded contract,
// tracking its status and, once analyzed, its result.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/agreemint/pkg/types"
)

const (
	dbFile         = "agreemint.db"
	defaultDataDir = "data"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("analysis not found")

// Store manages the analysis record SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the record database at dataDir/agreemint.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			status TEXT NOT NULL,
			upload_time TEXT NOT NULL,
			analysis_time TEXT,
			results TEXT,
			error_message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_status ON analyses(status)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_upload_time ON analyses(upload_time)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create inserts a new pending record.
func (s *Store) Create(ctx context.Context, id, filename string, uploaded time.Time) (types.AnalysisRecord, error) {
	rec := types.AnalysisRecord{
		ID:         id,
		Filename:   filename,
		Status:     types.RecordPending,
		UploadTime: uploaded.UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, filename, status, upload_time) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Filename, string(rec.Status), formatTime(rec.UploadTime),
	)
	if err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("inserting record %s: %w", id, err)
	}
	return rec, nil
}

// Complete marks a record completed and stores its result.
func (s *Store) Complete(ctx context.Context, id string, result types.AnalysisResult, at time.Time) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return s.finish(ctx, id, types.RecordCompleted, string(data), "", at)
}

// Fail marks a record failed with the given reason.
func (s *Store) Fail(ctx context.Context, id, reason string, at time.Time) error {
	return s.finish(ctx, id, types.RecordFailed, "", reason, at)
}

func (s *Store) finish(ctx context.Context, id string, status types.RecordStatus, results, reason string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE analyses SET status = ?, analysis_time = ?, results = NULLIF(?, ''), error_message = NULLIF(?, '')
		 WHERE id = ?`,
		string(status), formatTime(at), results, reason, id,
	)
	if err != nil {
		return fmt.Errorf("updating record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

const selectColumns = `SELECT id, filename, status, upload_time, analysis_time, results, error_message FROM analyses`

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.AnalysisRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("reading record %s: %w", id, err)
	}
	return rec, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Status restricts results to one status. Empty lists all.
	Status types.RecordStatus

	// Limit caps the number of records. Zero means no cap.
	Limit int
}

// List returns records in upload order, oldest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.AnalysisRecord, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(selectColumns)
	if opts.Status != "" {
		qb.WriteString(` WHERE status = ?`)
		args = append(args, string(opts.Status))
	}
	qb.WriteString(` ORDER BY upload_time, id`)
	if opts.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	recs := make([]types.AnalysisRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.AnalysisRecord, error) {
	var (
		rec                          types.AnalysisRecord
		status, uploaded             string
		analyzed, results, errorText sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.Filename, &status, &uploaded, &analyzed, &results, &errorText); err != nil {
		return rec, err
	}

	rec.Status = types.RecordStatus(status)
	t, err := time.Parse(timeLayout, uploaded)
	if err != nil {
		return rec, fmt.Errorf("parsing upload_time: %w", err)
	}
	rec.UploadTime = t

	if analyzed.Valid {
		t, err := time.Parse(timeLayout, analyzed.String)
		if err != nil {
			return rec, fmt.Errorf("parsing analysis_time: %w", err)
		}
		rec.AnalysisTime = &t
	}
	if results.Valid {
		var r types.AnalysisResult
		if err := json.Unmarshal([]byte(results.String), &r); err != nil {
			return rec, fmt.Errorf("parsing results: %w", err)
		}
		rec.Results = &r
	}
	rec.ErrorMessage = errorText.String
	return rec, nil
}

// timeLayout is fixed width with UTC timestamps so text order in SQLite is
// time order. RFC3339Nano drops trailing zeros and would not sort.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
