// Package store provides SQLite storage for the Air Keys commit journal.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database that disappears on Close.
const MemoryPath = ":memory:"

// Store is the commit journal database.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the journal at dbPath, or MemoryPath for a throwaway one, and
// brings the schema up to date.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: pragmas are per connection, and every pooled
	// connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", dbPath, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}
