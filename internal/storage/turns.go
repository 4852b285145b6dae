package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubeanim"
)

// TurnRecord is a committed turn in the journal.
type TurnRecord struct {
	TurnID    int64
	SessionID string
	Epoch     int
	Seq       int
	TsMs      int64
	Face      string
	Direction int
	Notation  string
}

// Turn converts the record back into a cubeanim.Turn.
func (r TurnRecord) Turn() (cubeanim.Turn, error) {
	f, err := cubeanim.ParseFace(r.Face)
	if err != nil {
		return cubeanim.Turn{}, err
	}
	d := cubeanim.Direction(r.Direction)
	if !d.Valid() {
		return cubeanim.Turn{}, cubeanim.ErrUnknownDirection
	}
	return cubeanim.Turn{
		Seq:       r.Seq,
		Face:      f,
		Direction: d,
		At:        time.UnixMilli(r.TsMs).UTC(),
	}, nil
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

const insertTurn = `
	INSERT INTO turns (session_id, epoch, seq, ts_ms, face, direction, notation)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Create records one committed turn and returns its ID.
func (r *TurnRepository) Create(sessionID string, epoch int, t cubeanim.Turn) (int64, error) {
	result, err := r.db.Exec(insertTurn,
		sessionID, epoch, t.Seq, t.At.UnixMilli(), t.Face.String(), int(t.Direction), t.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}

	return id, nil
}

// CreateBatch records several turns in a single transaction.
func (r *TurnRepository) CreateBatch(sessionID string, epoch int, turns []cubeanim.Turn) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, t := range turns {
			_, err := tx.Exec(insertTurn,
				sessionID, epoch, t.Seq, t.At.UnixMilli(), t.Face.String(), int(t.Direction), t.Notation())
			if err != nil {
				return fmt.Errorf("failed to create turn %d: %w", t.Seq, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all turns for a session in commit order.
func (r *TurnRepository) GetBySession(sessionID string) ([]TurnRecord, error) {
	return r.query(`
		SELECT turn_id, session_id, epoch, seq, ts_ms, face, direction, notation
		FROM turns
		WHERE session_id = ?
		ORDER BY epoch, seq
	`, sessionID)
}

// GetByEpoch retrieves the turns committed between two resets.
func (r *TurnRepository) GetByEpoch(sessionID string, epoch int) ([]TurnRecord, error) {
	return r.query(`
		SELECT turn_id, session_id, epoch, seq, ts_ms, face, direction, notation
		FROM turns
		WHERE session_id = ? AND epoch = ?
		ORDER BY seq
	`, sessionID, epoch)
}

func (r *TurnRepository) query(q string, args ...any) ([]TurnRecord, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.TurnID, &t.SessionID, &t.Epoch, &t.Seq, &t.TsMs, &t.Face, &t.Direction, &t.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// Count returns the number of turns recorded for a session.
func (r *TurnRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}
