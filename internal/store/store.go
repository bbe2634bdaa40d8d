// Package store persists assembled monthly records as JSON documents in
// SQLite, one row per month keyed by date. Analysis queries read fields out
// of the documents with the JSON1 functions, so the stored document remains
// the single source of truth for a month.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"macrocli/pkg/contracts/domain"
)

// Sentinel errors mapped to HTTP statuses by the service layer.
var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	date TEXT PRIMARY KEY,
	doc  TEXT NOT NULL
);
`

// Store is a SQLite-backed document store for monthly panel records.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store at path. Pass ":memory:" for
// an ephemeral store in tests.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the record for one date.
func (s *Store) Get(ctx context.Context, date string) (domain.MonthlyRecord, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM records WHERE date = ?`, date).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MonthlyRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.MonthlyRecord{}, fmt.Errorf("query record %s: %w", date, err)
	}
	return decodeRecord(doc)
}

// List returns records ordered by date, skipping skip rows and returning at
// most limit.
func (s *Store) List(ctx context.Context, skip, limit int) ([]domain.MonthlyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM records ORDER BY date LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Insert adds a new record; ErrExists when the date is already present.
func (s *Store) Insert(ctx context.Context, rec domain.MonthlyRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.Date, err)
	}
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE date = ?`, rec.Date).Scan(&exists); err != nil {
		return fmt.Errorf("check record %s: %w", rec.Date, err)
	}
	if exists > 0 {
		return ErrExists
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO records (date, doc) VALUES (?, ?)`, rec.Date, string(doc)); err != nil {
		return fmt.Errorf("insert record %s: %w", rec.Date, err)
	}
	return nil
}

// Update replaces the record for rec.Date; ErrNotFound when absent.
func (s *Store) Update(ctx context.Context, rec domain.MonthlyRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.Date, err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET doc = ? WHERE date = ?`, string(doc), rec.Date)
	if err != nil {
		return fmt.Errorf("update record %s: %w", rec.Date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record %s: %w", rec.Date, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record for one date; ErrNotFound when absent.
func (s *Store) Delete(ctx context.Context, date string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record %s: %w", date, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// ReplaceAll bulk-loads records in one transaction. With drop set, all
// existing rows are removed first; otherwise incoming records overwrite
// same-date rows and leave the rest alone.
func (s *Store) ReplaceAll(ctx context.Context, records []domain.MonthlyRecord, drop bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if drop {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
			return 0, fmt.Errorf("drop records: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (date, doc) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET doc = excluded.doc`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("encode record %s: %w", rec.Date, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.Date, string(doc)); err != nil {
			return 0, fmt.Errorf("import record %s: %w", rec.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(records), nil
}

func decodeRecord(doc string) (domain.MonthlyRecord, error) {
	var rec domain.MonthlyRecord
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return domain.MonthlyRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]domain.MonthlyRecord, error) {
	var records []domain.MonthlyRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decodeRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
