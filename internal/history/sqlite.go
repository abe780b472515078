package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore creates a new SQLite journal instance
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordEdit appends one committed batch to the journal.
func (s *SQLiteStore) RecordEdit(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO edits (file_path, set_line_count, replace_lines_count,
		                   insert_after_count, replace_count, relocated,
		                   replacements, before_hash, after_hash,
		                   lines_before, lines_after, duration_ms, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := s.db.ExecContext(ctx, query,
		entry.FilePath, entry.Ops.SetLine, entry.Ops.ReplaceLines,
		entry.Ops.InsertAfter, entry.Ops.Replace, entry.Relocated,
		entry.Replacements, entry.BeforeHash, entry.AfterHash,
		entry.LinesBefore, entry.LinesAfter, entry.DurationMS, now)
	if err != nil {
		return fmt.Errorf("failed to record edit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	entry.AppliedAt = now
	return nil
}

// ListEdits returns the most recent journal entries for a file, newest
// first. A limit of 0 or less returns the default page of 20.
func (s *SQLiteStore) ListEdits(ctx context.Context, filePath string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, file_path, set_line_count, replace_lines_count,
		       insert_after_count, replace_count, relocated, replacements,
		       before_hash, after_hash, lines_before, lines_after,
		       duration_ms, applied_at
		FROM edits
		WHERE file_path = ?
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, filePath, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list edits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.ID, &e.FilePath, &e.Ops.SetLine, &e.Ops.ReplaceLines,
			&e.Ops.InsertAfter, &e.Ops.Replace, &e.Relocated, &e.Replacements,
			&e.BeforeHash, &e.AfterHash, &e.LinesBefore, &e.LinesAfter,
			&e.DurationMS, &e.AppliedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan edit row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
