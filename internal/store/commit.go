package store

import (
	"database/sql"
	"time"
)

// Commit is a journaled key selection.
type Commit struct {
	ID          int64
	SessionID   string
	Key         string
	CommittedAt time.Time
	Held        time.Duration
}

// KeyCount is how often a key was committed in a session.
type KeyCount struct {
	Key   string
	Count int
}

// CommitRepository provides operations for journaled commits.
type CommitRepository struct {
	db *sql.DB
}

// Commits returns the commit repository for this store.
func (s *Store) Commits() *CommitRepository {
	return &CommitRepository{db: s.db}
}

// Record inserts a commit and sets its ID.
func (r *CommitRepository) Record(c *Commit) error {
	result, err := r.db.Exec(
		`INSERT INTO commits (session_id, key, committed_at_ms, held_ms) VALUES (?, ?, ?, ?)`,
		c.SessionID, c.Key, c.CommittedAt.UnixMilli(), c.Held.Milliseconds(),
	)
	if err != nil {
		return err
	}

	c.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves a session's commits in the order they happened.
func (r *CommitRepository) ListBySession(sessionID string) ([]Commit, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, key, committed_at_ms, held_ms
		 FROM commits
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commits []Commit
	for rows.Next() {
		var c Commit
		var atMs, heldMs int64
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Key, &atMs, &heldMs); err != nil {
			return nil, err
		}
		c.CommittedAt = time.UnixMilli(atMs)
		c.Held = time.Duration(heldMs) * time.Millisecond
		commits = append(commits, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return commits, nil
}

// CountByKey returns per-key commit counts for a session, most used first.
func (r *CommitRepository) CountByKey(sessionID string) ([]KeyCount, error) {
	rows, err := r.db.Query(
		`SELECT key, COUNT(*) AS cnt
		 FROM commits
		 WHERE session_id = ?
		 GROUP BY key
		 ORDER BY cnt DESC, key`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []KeyCount
	for rows.Next() {
		var kc KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, kc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
