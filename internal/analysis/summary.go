package analysis

import (
	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
)

// Summary contains statistics for one turn sequence.
type Summary struct {
	TotalTurns       int            `json:"total_turns"`
	CompactedMoves   int            `json:"compacted_moves"`
	Efficiency       float64        `json:"efficiency"`
	TPS              float64        `json:"tps"`
	AvgTurnGapMs     float64        `json:"avg_turn_gap_ms"`
	LongestPauseMs   int64          `json:"longest_pause_ms"`
	FaceCounts       map[string]int `json:"face_counts"`
	MostUsedFace     string         `json:"most_used_face,omitempty"`
	CounterClockwise int            `json:"counter_clockwise"`
}

// Summarize computes statistics for turns, which must be in commit order.
func Summarize(turns []cubeanim.Turn) *Summary {
	s := &Summary{
		TotalTurns: len(turns),
		FaceCounts: make(map[string]int),
	}
	if len(turns) == 0 {
		return s
	}

	s.CompactedMoves = len(notation.Compact(turns))
	s.Efficiency = float64(quarterCount(notation.Compact(turns))) / float64(len(turns))

	for _, t := range turns {
		s.FaceCounts[t.Face.String()]++
		if t.Direction == cubeanim.CounterClockwise {
			s.CounterClockwise++
		}
	}

	// Faces in fixed order so ties resolve the same way every time.
	best := 0
	for _, f := range cubeanim.Faces {
		if n := s.FaceCounts[f.String()]; n > best {
			best = n
			s.MostUsedFace = f.String()
		}
	}

	s.LongestPauseMs = FindLongestPause(turns)
	if len(turns) > 1 {
		spanMs := turns[len(turns)-1].At.Sub(turns[0].At).Milliseconds()
		s.AvgTurnGapMs = float64(spanMs) / float64(len(turns)-1)
		s.TPS = CalculateTPS(len(turns), spanMs)
	}

	return s
}

// CalculateTPS calculates turns per second over a span.
func CalculateTPS(turns int, spanMs int64) float64 {
	if spanMs <= 0 {
		return 0
	}
	return float64(turns) / (float64(spanMs) / 1000.0)
}

// FindLongestPause finds the longest gap between consecutive turns.
func FindLongestPause(turns []cubeanim.Turn) int64 {
	var longest int64

	for i := 1; i < len(turns); i++ {
		gap := turns[i].At.Sub(turns[i-1].At).Milliseconds()
		if gap > longest {
			longest = gap
		}
	}

	return longest
}
