// Package notation converts between committed turns and standard
// face-turn notation (F, F', F2).
package notation

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeanim"
)

// Move is a face turn of one, two or three quarters.
// Quarters is 1 (clockwise), 2 (half turn) or -1 (counter-clockwise).
type Move struct {
	Face     cubeanim.Face
	Quarters int
}

// Notation returns the standard notation for the move.
func (m Move) Notation() string {
	switch m.Quarters {
	case -1:
		return m.Face.Letter() + "'"
	case 2:
		return m.Face.Letter() + "2"
	default:
		return m.Face.Letter()
	}
}

// Turns expands the move into quarter turns.
// A half turn becomes two clockwise quarters.
func (m Move) Turns() []cubeanim.Turn {
	switch m.Quarters {
	case -1:
		return []cubeanim.Turn{{Face: m.Face, Direction: cubeanim.CounterClockwise}}
	case 2:
		t := cubeanim.Turn{Face: m.Face, Direction: cubeanim.Clockwise}
		return []cubeanim.Turn{t, t}
	default:
		return []cubeanim.Turn{{Face: m.Face, Direction: cubeanim.Clockwise}}
	}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	if m.Quarters == 2 {
		return m
	}
	return Move{Face: m.Face, Quarters: -m.Quarters}
}

// Parse parses a single move such as R, R', R2.
func Parse(s string) (Move, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, false
	}

	face, err := cubeanim.ParseFace(s[:1])
	if err != nil {
		return Move{}, false
	}

	quarters := 1 // Default is clockwise
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			quarters = -1
		case "2", "2'":
			quarters = 2
		default:
			return Move{}, false
		}
	}

	return Move{Face: face, Quarters: quarters}, true
}

// ParseSequence parses a space-separated sequence of moves.
func ParseSequence(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, ok := Parse(part)
		if !ok {
			return nil, fmt.Errorf("invalid move %q", part)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// Expand flattens moves into the quarter turns that realise them.
func Expand(moves []Move) []cubeanim.Turn {
	var turns []cubeanim.Turn
	for _, m := range moves {
		turns = append(turns, m.Turns()...)
	}
	return turns
}

// Invert returns the sequence that undoes moves.
func Invert(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// FormatSequence formats a slice of moves as a space-separated string.
func FormatSequence(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// NormalizeQuarters normalizes a quarter count to -1, 0, 1 or 2.
// -3 -> 1, -2 -> 2, -1 -> -1, 0 -> 0, 3 -> -1, 4 -> 0
func NormalizeQuarters(q int) int {
	q = ((q % 4) + 4) % 4
	if q == 3 {
		return -1
	}
	return q
}

// Compact merges consecutive turns of the same face:
// F F becomes F2, F F' cancels, F F F becomes F'.
// Cancellations can expose new neighbours, which are merged too.
func Compact(turns []cubeanim.Turn) []Move {
	var out []Move
	for _, t := range turns {
		q := 1
		if t.Direction == cubeanim.CounterClockwise {
			q = -1
		}

		if n := len(out); n > 0 && out[n-1].Face == t.Face {
			merged := NormalizeQuarters(out[n-1].Quarters + q)
			if merged == 0 {
				out = out[:n-1]
			} else {
				out[n-1].Quarters = merged
			}
			continue
		}
		out = append(out, Move{Face: t.Face, Quarters: q})
	}
	return out
}
