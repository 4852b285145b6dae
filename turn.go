package cubeanim

import (
	"strings"
	"time"
)

// Direction is the process-wide rotation direction applied to face commands.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "Counter-Clockwise"
	default:
		return "unknown"
	}
}

// Valid reports whether d is Clockwise or CounterClockwise.
func (d Direction) Valid() bool {
	return d == Clockwise || d == CounterClockwise
}

// Sign returns +1 for Clockwise and -1 for CounterClockwise.
func (d Direction) Sign() float32 {
	if d == CounterClockwise {
		return -1
	}
	return 1
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == CounterClockwise {
		return Clockwise
	}
	return CounterClockwise
}

// ParseDirection parses "cw", "clockwise", "ccw", "counter-clockwise" and "'".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cw", "clockwise":
		return Clockwise, nil
	case "ccw", "'", "counter-clockwise", "counterclockwise":
		return CounterClockwise, nil
	default:
		return 0, ErrUnknownDirection
	}
}

// Turn records one committed face rotation.
type Turn struct {
	Seq       int       // 1-based position in the puzzle history
	Face      Face      // Which face turned
	Direction Direction // Direction in effect when the command was issued
	At        time.Time // When the commit ran
}

// Notation returns the notation string for this turn.
// Examples: F, F', U, U'
func (t Turn) Notation() string {
	if t.Direction == CounterClockwise {
		return t.Face.Letter() + "'"
	}
	return t.Face.Letter()
}

// Inverse returns the turn that undoes this one.
func (t Turn) Inverse() Turn {
	inv := t
	inv.Direction = t.Direction.Opposite()
	return inv
}

// String returns the notation string (alias for Notation).
func (t Turn) String() string {
	return t.Notation()
}

// FormatTurns formats turns as a space-separated notation string.
func FormatTurns(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}

	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.Notation()
	}

	return strings.Join(parts, " ")
}
