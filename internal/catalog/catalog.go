// Package catalog provides persistent storage for material definitions.
// Definitions are stored as YAML documents in a SQLite database, so only
// definitions matyaml can represent (constants and tables) can be kept.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/matyaml"
)

// ErrNotFound is returned when a named material is not in the catalog.
var ErrNotFound = errors.New("material not found in catalog")

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS materials (
    name TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Store is a SQLite-backed material catalog.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Open creates or opens the catalog database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	dbPath := filepath.Join(dir, "materials.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return err
	}
	var version int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, SchemaVersion)
		return err
	case err != nil:
		return err
	case version > SchemaVersion:
		return fmt.Errorf("catalog schema version %d is newer than supported version %d", version, SchemaVersion)
	}
	return nil
}

// Put stores a definition, replacing any existing entry with the same name.
func (s *Store) Put(ctx context.Context, def *material.Definition) error {
	doc, err := matyaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to serialize material %q: %w", def.Name(), err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO materials (name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		def.Name(), string(doc), now, now)
	if err != nil {
		return fmt.Errorf("failed to store material %q: %w", def.Name(), err)
	}
	return nil
}

// Get loads a definition by name.
func (s *Store) Get(ctx context.Context, name string) (*material.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM materials WHERE name = ?`, name).Scan(&doc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("failed to load material %q: %w", name, err)
	}
	def, err := matyaml.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored material %q: %w", name, err)
	}
	return def, nil
}

// List returns the stored material names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan material name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a definition by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete material %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
