package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session is one run of the keyboard, from camera open to exit.
type Session struct {
	ID         string
	Theme      string
	StartedAt  time.Time
	EndedAt    *time.Time
	TextLength int
}

// SessionRepository provides operations for typing sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a new session with a generated ID.
func (r *SessionRepository) Start(theme string, at time.Time) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Theme:     theme,
		StartedAt: at,
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, theme, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Theme, sess.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// End marks a session finished and records how much text it produced.
func (r *SessionRepository) End(id string, at time.Time, textLength int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, text_length = ? WHERE id = ?`,
		at, textLength, id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var ended sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, theme, started_at, ended_at, text_length
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Theme, &sess.StartedAt, &ended, &sess.TextLength)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ended.Valid {
		sess.EndedAt = &ended.Time
	}
	return sess, nil
}
