// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of every PDF the tool writes and
// exports it to YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/potentia/pkg/types"
)

const defaultLimit = 20

// Store manages the ledger database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the ledger at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS artifacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation TEXT NOT NULL,
			path TEXT NOT NULL,
			pages INTEGER NOT NULL,
			sources TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_created_at ON artifacts(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a to the ledger.
func (s *Store) Record(ctx context.Context, a types.Artifact) error {
	sources, err := json.Marshal(a.Sources)
	if err != nil {
		return fmt.Errorf("encoding sources: %w", err)
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO artifacts (operation, path, pages, sources, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(a.Operation), a.Path, a.Pages, string(sources), created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", a.Path, err)
	}
	return nil
}

// List returns up to limit artifacts, newest first. A limit of 0 uses the
// default of 20; a negative limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]types.Artifact, error) {
	if limit == 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT operation, path, pages, sources, created_at FROM artifacts
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var out []types.Artifact
	for rows.Next() {
		var (
			a       types.Artifact
			op      string
			sources string
			created string
		)
		if err := rows.Scan(&op, &a.Path, &a.Pages, &sources, &created); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		a.Operation = types.Operation(op)
		if err := json.Unmarshal([]byte(sources), &a.Sources); err != nil {
			return nil, fmt.Errorf("decoding sources of %s: %w", a.Path, err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", a.Path, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
