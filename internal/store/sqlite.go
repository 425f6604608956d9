package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/shelltutor/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore keeps the document as a single row of a SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the SQLite database and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS progress_document (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			body TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS progress_saves (
			id INTEGER PRIMARY KEY,
			saved_at TEXT NOT NULL,
			bytes INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_progress_saves_saved_at ON progress_saves(saved_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the document row. An empty table yields an empty document.
func (s *SQLiteStore) Load(ctx context.Context) (model.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM progress_document WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return decodeDocument(nil)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read progress: %w", err)
	}
	return decodeDocument([]byte(body))
}

// Save replaces the document row and records the save in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, doc model.Document) (err error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO progress_document (id, body, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(data), now,
	); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO progress_saves (saved_at, bytes) VALUES (?, ?)`,
		now, len(data),
	); err != nil {
		return fmt.Errorf("failed to record save: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// SaveCount returns how many times the document was saved.
func (s *SQLiteStore) SaveCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM progress_saves`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
