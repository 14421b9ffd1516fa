// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bloomz/pkg/types"
)

// Store is a SQLite-backed compound library. The mass gate runs as an
// indexed range query, which keeps per-peak filtering cheap even for
// libraries far larger than the in-memory path is meant for.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the library database at path, creating the
// schema if it does not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening library database: %w", err)
	}

	s := &Store{db: db, path: path}
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
		`CREATE TABLE IF NOT EXISTS compounds (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			exact_mass REAL NOT NULL,
			chemical_class TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_compounds_mass ON compounds(exact_mass)`,
		`CREATE INDEX IF NOT EXISTS idx_compounds_name ON compounds(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Import inserts normalized library entries in one transaction and
// returns the number inserted. Entries are appended; call Clear first to
// replace the library wholesale.
func (s *Store) Import(ctx context.Context, entries []types.LibraryEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO compounds (name, exact_mass, chemical_class) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Name, e.ExactMass, e.Class); err != nil {
			return inserted, fmt.Errorf("inserting compound %q: %w", e.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing import: %w", err)
	}
	return inserted, nil
}

// Clear removes every compound from the store.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM compounds`)
	return err
}

// Count returns the number of compounds in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM compounds`).Scan(&n)
	return n, err
}

// CandidatesInRange returns every compound whose exact mass lies in the
// closed interval [lo, hi], in insertion order.
func (s *Store) CandidatesInRange(ctx context.Context, lo, hi float64) ([]types.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, exact_mass, chemical_class FROM compounds
		 WHERE exact_mass BETWEEN ? AND ? ORDER BY rowid`, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("querying mass gate: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// All returns the full library in insertion order.
func (s *Store) All(ctx context.Context) ([]types.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, exact_mass, chemical_class FROM compounds ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying compounds: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.LibraryEntry, error) {
	var entries []types.LibraryEntry
	for rows.Next() {
		var e types.LibraryEntry
		var class sql.NullString
		if err := rows.Scan(&e.Name, &e.ExactMass, &class); err != nil {
			return nil, fmt.Errorf("scanning compound row: %w", err)
		}
		if class.Valid {
			e.Class = class.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
