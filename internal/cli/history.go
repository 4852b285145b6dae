package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/analysis"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var (
	historyLimit int
	sessionID    string
	sessionLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled sessions",
	Long: `List the most recent play and serve sessions from the journal.

Examples:
  cubeanim history
  cubeanim history --limit 50
  cubeanim history show --last
  cubeanim history show --id 3f2a9c1e`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the turns of one session",
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of sessions to list")

	historyCmd.AddCommand(historyShowCmd)
	addSessionFlags(historyShowCmd)
}

// addSessionFlags registers --id and --last on commands that act on one session.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sessionID, "id", "", "Session ID or unique prefix")
	cmd.Flags().BoolVar(&sessionLast, "last", false, "Use the most recent session")
}

// resolveSession finds the session selected by --id or --last.
func resolveSession(db *storage.DB) (*storage.Session, error) {
	if sessionID == "" && !sessionLast {
		return nil, fmt.Errorf("specify --id or --last")
	}

	repo := storage.NewSessionRepository(db)
	var s *storage.Session
	var err error
	if sessionLast {
		s, err = repo.GetLast()
	} else {
		s, err = repo.Find(sessionID)
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("no session found")
	}
	return s, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}

	fmt.Printf("%-10s %-6s %-20s %10s %6s %s\n", "ID", "SOURCE", "STARTED", "DURATION", "TURNS", "SOLVED")
	for _, s := range sessions {
		fmt.Printf("%-10s %-6s %-20s %10s %6d %s\n",
			s.SessionID[:8],
			s.Source,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatDuration(s.DurationMs),
			s.TurnCount,
			formatSolved(s.Solved),
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
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
	records, err := storage.NewTurnRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return err
	}
	turns, err := toTurns(records)
	if err != nil {
		return err
	}

	fmt.Printf("Session:  %s\n", s.SessionID)
	fmt.Printf("Source:   %s\n", s.Source)
	fmt.Printf("Started:  %s\n", s.StartedAt.Local().Format(time.RFC1123))
	fmt.Printf("Duration: %s\n", formatDuration(s.DurationMs))
	fmt.Printf("Solved:   %s\n", formatSolved(s.Solved))
	fmt.Printf("Resets:   %d\n", s.Resets)
	fmt.Printf("Turns:    %d\n", len(turns))
	fmt.Println()
	fmt.Printf("Raw:      %s\n", notationOf(turns))
	fmt.Printf("Compact:  %s\n", notation.FormatSequence(notation.Compact(turns)))

	if len(turns) == 0 {
		return nil
	}
	sum := analysis.Summarize(turns)
	rep := analysis.AnalyzeRepetitions(turns)
	fmt.Println()
	fmt.Printf("TPS:           %.2f\n", sum.TPS)
	fmt.Printf("Longest pause: %s\n", time.Duration(sum.LongestPauseMs)*time.Millisecond)
	fmt.Printf("Most used:     %s (%d)\n", sum.MostUsedFace, sum.FaceCounts[sum.MostUsedFace])
	fmt.Printf("Efficiency:    %.0f%%\n", sum.Efficiency*100)
	fmt.Printf("Cancellations: %d  Merges: %d  Wasted turns: %d\n",
		len(rep.ImmediateCancellations), len(rep.MergeOpportunities), rep.TotalWastedTurns)
	return nil
}

func formatDuration(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return (time.Duration(*ms) * time.Millisecond).Round(time.Second).String()
}

func formatSolved(solved *bool) string {
	switch {
	case solved == nil:
		return "-"
	case *solved:
		return "yes"
	default:
		return "no"
	}
}
