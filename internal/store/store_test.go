package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaObject(t *testing.T, s *Store, kind, name string) bool {
	t.Helper()

	var found string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type=? AND name=?", kind, name,
	).Scan(&found)
	return err == nil
}

func TestNew_CreatesDatabaseFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	_, err := os.Stat(dbPath)
	require.True(t, os.IsNotExist(err), "database file should not exist yet")

	s, err := New(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist after New")
	assert.Equal(t, dbPath, s.Path())
}

func TestNew_Schema(t *testing.T) {
	paths := map[string]string{
		"file":   filepath.Join(t.TempDir(), "journal.db"),
		"memory": MemoryPath,
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			s, err := New(path)
			require.NoError(t, err)
			defer s.Close()

			for _, table := range []string{"sessions", "commits"} {
				assert.True(t, schemaObject(t, s, "table", table), "table %q", table)
			}
			for _, idx := range []string{"idx_commits_session_id", "idx_commits_key"} {
				assert.True(t, schemaObject(t, s, "index", idx), "index %q", idx)
			}

			var fk int
			require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
			assert.Equal(t, 1, fk, "foreign keys should be enabled")
		})
	}
}

func TestNew_ReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	first, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Migrations are idempotent.
	second, err := New(dbPath)
	require.NoError(t, err)
	defer second.Close()
	assert.True(t, schemaObject(t, second, "table", "commits"))
}

func TestStore_Close(t *testing.T) {
	s, err := New(MemoryPath)
	require.NoError(t, err)

	require.NoError(t, s.Close())

	_, err = s.DB().Exec("SELECT 1")
	assert.Error(t, err, "queries should fail after Close")
}
