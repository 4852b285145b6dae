package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the turns of a session",
	Long: `Export the journaled turns of a session as text or JSON.
Text output has one line of notation per reset epoch.

Examples:
  cubeanim export --last
  cubeanim export --id 3f2a9c1e --format json
  cubeanim export --id 3f2a9c1e --format txt -o turns.txt`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSessionFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

type exportTurn struct {
	Epoch     int    `json:"epoch"`
	Seq       int    `json:"seq"`
	TsMs      int64  `json:"ts_ms"`
	Face      string `json:"face"`
	Direction int    `json:"direction"`
	Notation  string `json:"notation"`
}

type exportDoc struct {
	SessionID string       `json:"session_id"`
	Source    string       `json:"source"`
	StartedAt string       `json:"started_at"`
	Resets    int          `json:"resets"`
	Solved    *bool        `json:"solved,omitempty"`
	Turns     []exportTurn `json:"turns"`
}

func runExport(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("failed to get turns: %w", err)
	}

	var output []byte
	switch exportFormat {
	case "json":
		output, err = exportJSON(s, records)
		if err != nil {
			return err
		}
	case "txt":
		output = []byte(exportText(records))
	default:
		return fmt.Errorf("unknown format %q (use txt or json)", exportFormat)
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(output)
		return err
	}
	if err := os.WriteFile(exportOutput, output, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Exported %d turns to %s\n", len(records), exportOutput)
	return nil
}

func exportJSON(s *storage.Session, records []storage.TurnRecord) ([]byte, error) {
	doc := exportDoc{
		SessionID: s.SessionID,
		Source:    s.Source,
		StartedAt: s.StartedAt.Format(time.RFC3339),
		Resets:    s.Resets,
		Solved:    s.Solved,
		Turns:     make([]exportTurn, 0, len(records)),
	}
	for _, r := range records {
		doc.Turns = append(doc.Turns, exportTurn{
			Epoch:     r.Epoch,
			Seq:       r.Seq,
			TsMs:      r.TsMs,
			Face:      r.Face,
			Direction: r.Direction,
			Notation:  r.Notation,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// exportText writes one line of notation per epoch.
func exportText(records []storage.TurnRecord) string {
	var b strings.Builder
	epoch := -1
	var line []string
	flush := func() {
		if epoch >= 0 {
			b.WriteString(strings.Join(line, " "))
			b.WriteString("\n")
		}
		line = line[:0]
	}
	for _, r := range records {
		if r.Epoch != epoch {
			flush()
			epoch = r.Epoch
		}
		line = append(line, r.Notation)
	}
	flush()
	return b.String()
}
