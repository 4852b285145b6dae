package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is one play or serve session in the journal.
type Session struct {
	SessionID  string
	Source     string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	Solved     *bool
	AppVersion *string
	Resets     int
	TurnCount  int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a new session and returns its ID.
func (r *SessionRepository) Create(source, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	var appVersionPtr *string
	if appVersion != "" {
		appVersionPtr = &appVersion
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, source, started_at, app_version)
		VALUES (?, ?, ?, ?)
	`, id, source, startedAt.Format(time.RFC3339), appVersionPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as finished and records whether the puzzle was
// solved at that point.
func (r *SessionRepository) End(sessionID string, solved bool) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?, solved = ?
		WHERE session_id = ?
	`, endedAt.Format(time.RFC3339), endedAt.Sub(startedAt).Milliseconds(), solved, sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

// MarkReset records that the puzzle was reset and returns the new reset
// count. Turns committed afterwards belong to that epoch.
func (r *SessionRepository) MarkReset(sessionID string) (int, error) {
	var resets int
	err := r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE sessions SET resets = resets + 1 WHERE session_id = ?", sessionID); err != nil {
			return err
		}
		return tx.QueryRow("SELECT resets FROM sessions WHERE session_id = ?", sessionID).Scan(&resets)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to mark reset: %w", err)
	}
	return resets, nil
}

const sessionColumns = `
	s.session_id, s.source, s.started_at, s.ended_at, s.duration_ms, s.solved, s.app_version, s.resets,
	(SELECT COUNT(*) FROM turns t WHERE t.session_id = s.session_id)
`

// Get retrieves a session by ID. It returns nil if there is no such session.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions s WHERE s.session_id = ?`, sessionID)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// ErrAmbiguousPrefix is returned by Find when a prefix matches more than
// one session.
var ErrAmbiguousPrefix = errors.New("session id prefix is ambiguous")

// Find retrieves the session whose ID starts with prefix. It returns nil
// if nothing matches.
func (r *SessionRepository) Find(prefix string) (*Session, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions s
		WHERE s.session_id LIKE ? || '%'
		LIMIT 2
	`, strings.ReplaceAll(prefix, "%", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	defer rows.Close()

	var found []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, ErrAmbiguousPrefix
	}
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*Session, error) {
	sessions, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// List returns the most recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions s
		ORDER BY s.started_at DESC, s.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

// Delete removes a session and its turns.
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString
	var solved sql.NullBool

	err := row.Scan(
		&s.SessionID, &s.Source, &startedAtStr, &endedAtStr,
		&s.DurationMs, &solved, &s.AppVersion, &s.Resets, &s.TurnCount,
	)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339, endedAtStr.String)
		s.EndedAt = &t
	}
	if solved.Valid {
		v := solved.Bool
		s.Solved = &v
	}

	return &s, nil
}
