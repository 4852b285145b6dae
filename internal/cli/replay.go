package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Rebuild a journaled session on a fresh puzzle",
	Long: `Apply every turn journaled for a session, in order, to a new solved
puzzle and print the resulting net. The running puzzle is never restored
from the journal; this is for review only.

Examples:
  cubeanim replay --last
  cubeanim replay --id 3f2a9c1e`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	addSessionFlags(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(db)
	if err != nil {
		return err
	}
	// Only turns since the last reset describe the final state.
	records, err := storage.NewTurnRepository(db).GetByEpoch(s.SessionID, s.Resets)
	if err != nil {
		return err
	}
	turns, err := toTurns(records)
	if err != nil {
		return err
	}

	p := replay(turns)

	fmt.Printf("Session %s: %d turns", s.SessionID[:8], len(turns))
	if s.Resets > 0 {
		fmt.Printf(" since reset %d", s.Resets)
	}
	fmt.Print("\n\n")
	fmt.Print(p.Net().String())
	fmt.Println()
	fmt.Printf("Moves:  %s\n", notation.FormatSequence(notation.Compact(turns)))
	if p.IsSolved() {
		fmt.Println("Solved: yes")
	} else {
		fmt.Println("Solved: no")
	}
	return nil
}

// replay applies turns, in order, to a new solved puzzle.
func replay(turns []cubeanim.Turn) *cubeanim.Puzzle {
	p := cubeanim.New()
	for _, t := range turns {
		p.Apply(t.Face, t.Direction)
	}
	return p
}

func toTurns(records []storage.TurnRecord) ([]cubeanim.Turn, error) {
	turns := make([]cubeanim.Turn, 0, len(records))
	for _, r := range records {
		t, err := r.Turn()
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", r.Seq, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func notationOf(turns []cubeanim.Turn) string {
	return cubeanim.FormatTurns(turns)
}
