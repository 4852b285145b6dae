package recorder

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

// SessionState represents the current state of a journal session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session writes the turns committed by one puzzle to the journal.
// Record and Reset are meant to be installed as the puzzle's commit and
// reset hooks.
type Session struct {
	db        *storage.DB
	stateFile *StateFile
	logger    *slog.Logger

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	epoch     int
	turnCount int
	failures  int

	sessionRepo *storage.SessionRepository
	turnRepo    *storage.TurnRepository
}

// NewSession creates a session manager. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		db:          db,
		stateFile:   stateFile,
		logger:      logger,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		turnRepo:    storage.NewTurnRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// TurnCount returns the number of turns journaled in this session.
func (s *Session) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turnCount
}

// Failures returns the number of turns that could not be written.
func (s *Session) Failures() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures
}

// Start opens a new journal session. A session left open by a previous
// run is closed first.
func (s *Session) Start(source, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("session already in progress")
	}

	s.closeDangling()

	id, err := s.sessionRepo.Create(source, appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.epoch = 0
	s.turnCount = 0
	s.failures = 0
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(s.db.Path(), id); err != nil {
			s.logger.Warn("failed to update state file", "error", err)
		}
	}

	s.logger.Info("journal session started", "session_id", id, "source", source)
	return id, nil
}

func (s *Session) closeDangling() {
	if s.stateFile == nil {
		return
	}
	prev := s.stateFile.ActiveSessionID()
	if prev == "" {
		return
	}
	if existing, err := s.sessionRepo.Get(prev); err == nil && existing != nil && existing.EndedAt == nil {
		if err := s.sessionRepo.End(prev, false); err != nil {
			s.logger.Warn("failed to close previous session", "session_id", prev, "error", err)
		} else {
			s.logger.Info("closed previous session", "session_id", prev)
		}
	}
}

// Record journals one committed turn. Write failures are logged and
// counted; they never reach the puzzle.
func (s *Session) Record(t cubeanim.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}

	if _, err := s.turnRepo.Create(s.sessionID, s.epoch, t); err != nil {
		s.failures++
		s.logger.Error("failed to journal turn", "session_id", s.sessionID, "seq", t.Seq, "error", err)
		return
	}
	s.turnCount++
}

// Reset starts a new epoch. The puzzle numbers its turns from 1 again
// after a reset, and replay only applies turns from the last epoch.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}

	epoch, err := s.sessionRepo.MarkReset(s.sessionID)
	if err != nil {
		s.failures++
		s.logger.Error("failed to journal reset", "session_id", s.sessionID, "error", err)
		// Keep numbering unique even though the reset was not stored.
		s.epoch++
		return
	}
	s.epoch = epoch
}

// End closes the current session.
func (s *Session) End(solved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no session in progress")
	}

	if err := s.sessionRepo.End(s.sessionID, solved); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(); err != nil {
			s.logger.Warn("failed to clear state file", "error", err)
		}
	}

	s.logger.Info("journal session ended", "session_id", s.sessionID, "turns", s.turnCount, "solved", solved)
	return nil
}
