package store

import "fmt"

// migrations create the journal schema. Every statement is idempotent, so
// they run on each open.
var migrations = []string{
	// One row per run of the keyboard
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		theme TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		text_length INTEGER NOT NULL DEFAULT 0
	)`,

	// Every key selected by dwell
	`CREATE TABLE IF NOT EXISTS commits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		key TEXT NOT NULL,
		committed_at_ms INTEGER NOT NULL,
		held_ms INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_commits_session_id ON commits(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_commits_key ON commits(session_id, key)`,
}

func (s *Store) runMigrations() error {
	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
