// Package analysis computes statistics over a sequence of committed turns.
package analysis

import (
	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
)

// Cancellation is a turn immediately undone by the next one (R then R').
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Turn1  string `json:"turn1"`
	Turn2  string `json:"turn2"`
	TsMs   int64  `json:"ts_ms"`
}

// MergeOpportunity is a pair of adjacent same-face turns that could have
// been one (R then R is R2).
type MergeOpportunity struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Turn1  string `json:"turn1"`
	Turn2  string `json:"turn2"`
	Merged string `json:"merged"`
	TsMs   int64  `json:"ts_ms"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation     `json:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity `json:"merge_opportunities"`

	// TotalWastedTurns is the number of quarter turns saved by compaction.
	TotalWastedTurns int `json:"total_wasted_turns"`
}

// AnalyzeRepetitions looks for wasted motion in a turn sequence.
func AnalyzeRepetitions(turns []cubeanim.Turn) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
	}

	for i := 0; i+1 < len(turns); i++ {
		t1, t2 := turns[i], turns[i+1]
		if t1.Face != t2.Face {
			continue
		}

		if t1.Direction != t2.Direction {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Turn1:  t1.Notation(),
				Turn2:  t2.Notation(),
				TsMs:   t1.At.UnixMilli(),
			})
			continue
		}

		report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
			Index1: i,
			Index2: i + 1,
			Turn1:  t1.Notation(),
			Turn2:  t2.Notation(),
			Merged: t1.Face.Letter() + "2",
			TsMs:   t1.At.UnixMilli(),
		})
	}

	report.TotalWastedTurns = len(turns) - quarterCount(notation.Compact(turns))
	return report
}

// quarterCount is the number of quarter turns needed to perform moves.
func quarterCount(moves []notation.Move) int {
	n := 0
	for _, m := range moves {
		if m.Quarters == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
