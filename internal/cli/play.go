package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
	"github.com/SeamusWaldron/cubeanim/internal/recorder"
)

var playScramble string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the puzzle in the terminal",
	Long: `Start an interactive TUI. Keys are configurable; the defaults follow
the colour of each face's centre.

Keyboard shortcuts (defaults):
  r o g b y w   - Turn Front, Back, Right, Left, Up, Down
  space         - Toggle clockwise / counter-clockwise
  arrow keys    - Rotate the view
  ctrl+r        - Reset
  q/Esc         - Quit

Face commands are ignored while another face is turning.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playScramble, "scramble", "", "Apply a move sequence before starting, e.g. \"R U R' U'\"")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerColors = map[cubeanim.Color]lipgloss.Color{
	cubeanim.Red:    lipgloss.Color("196"),
	cubeanim.Orange: lipgloss.Color("208"),
	cubeanim.Yellow: lipgloss.Color("226"),
	cubeanim.Green:  lipgloss.Color("46"),
	cubeanim.Blue:   lipgloss.Color("33"),
	cubeanim.White:  lipgloss.Color("255"),
}

// Messages
type frameMsg time.Time

type actionKind int

const (
	actFace actionKind = iota
	actView
	actToggle
	actReset
	actQuit
)

type action struct {
	kind actionKind
	face cubeanim.Face
	hint cubeanim.ViewHint
}

// keyMap builds the key lookup from the configured bindings.
func keyMap(k config.KeyConfig) map[string]action {
	return map[string]action{
		k.Front:     {kind: actFace, face: cubeanim.FaceFront},
		k.Back:      {kind: actFace, face: cubeanim.FaceBack},
		k.Right:     {kind: actFace, face: cubeanim.FaceRight},
		k.Left:      {kind: actFace, face: cubeanim.FaceLeft},
		k.Up:        {kind: actFace, face: cubeanim.FaceUp},
		k.Down:      {kind: actFace, face: cubeanim.FaceDown},
		k.Toggle:    {kind: actToggle},
		k.ViewLeft:  {kind: actView, hint: cubeanim.ViewLeft},
		k.ViewRight: {kind: actView, hint: cubeanim.ViewRight},
		k.ViewUp:    {kind: actView, hint: cubeanim.ViewUp},
		k.ViewDown:  {kind: actView, hint: cubeanim.ViewDown},
		k.Reset:     {kind: actReset},
		k.Quit:      {kind: actQuit},
		"esc":       {kind: actQuit},
		"ctrl+c":    {kind: actQuit},
	}
}

// Model
type playModel struct {
	puzzle   *cubeanim.Puzzle
	keys     map[string]action
	interval time.Duration
	logger   *slog.Logger

	// Journal, nil when disabled
	session *recorder.Session

	last     time.Time
	rejected int
	err      error
	quitting bool
}

func newPlayModel(cfg config.Config, logger *slog.Logger, opts ...cubeanim.Option) *playModel {
	opts = append(cfg.PuzzleOptions(), opts...)
	return &playModel{
		puzzle:   cubeanim.New(opts...),
		keys:     keyMap(cfg.Keys),
		interval: cfg.FrameInterval(),
		logger:   logger,
	}
}

func (m *playModel) Init() tea.Cmd {
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a, ok := m.keys[msg.String()]
		if !ok {
			return m, nil
		}
		switch a.kind {
		case actQuit:
			m.quitting = true
			return m, tea.Quit

		case actFace:
			if !m.puzzle.IssueFaceRotation(a.face) {
				m.rejected++
				m.logger.Debug("face command ignored while rotating", "face", a.face)
			}

		case actView:
			m.puzzle.IssueViewRotation(a.hint)

		case actToggle:
			m.puzzle.ToggleDirection()

		case actReset:
			m.puzzle.Reset()
			m.logger.Info("puzzle reset")
		}

	case frameMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.puzzle.Advance(now.Sub(m.last))
		}
		m.last = now
		return m, m.frameCmd()
	}

	return m, nil
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubeanim"))
	b.WriteString("\n\n")
	b.WriteString(renderNet(m.puzzle.Net()))
	b.WriteString("\n")

	status := fmt.Sprintf("Direction: %s", m.puzzle.Direction())
	if a, ok := m.puzzle.Active(); ok {
		status += "   " + turnStyle.Render(fmt.Sprintf("Turning %s %3.0f%%", a.Face, a.Progress()*100))
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	view := m.puzzle.View()
	b.WriteString(statusStyle.Render(fmt.Sprintf("View: yaw %.2f pitch %.2f   Turns: %d",
		view.Yaw, view.Pitch, m.puzzle.Commits())))
	b.WriteString("\n")

	if history := notation.FormatSequence(notation.Compact(m.puzzle.History())); history != "" {
		b.WriteString(statusStyle.Render("Moves: " + lastN(history, 60)))
		b.WriteString("\n")
	}

	if m.session != nil {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Journal: %d turns", m.session.TurnCount())))
		b.WriteString("\n")
	}

	if m.puzzle.IsSolved() && m.puzzle.Commits() > 0 {
		b.WriteString(solvedStyle.Render("Solved!"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r/o/g/b/y/w: turn  space: direction  arrows: view  ctrl+r: reset  q: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderNet draws the net with Up on top, Left Front Right Back across
// the middle, and Down below.
func renderNet(n cubeanim.Net) string {
	row := func(f cubeanim.Face, r int) string {
		var s strings.Builder
		for col := 0; col < 3; col++ {
			c := n[f][r*3+col]
			s.WriteString(lipgloss.NewStyle().Foreground(stickerColors[c]).Render("██"))
		}
		return s.String()
	}

	pad := strings.Repeat(" ", 7)
	var b strings.Builder
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(cubeanim.FaceUp, r) + "\n")
	}
	for r := 0; r < 3; r++ {
		parts := make([]string, 0, 4)
		for _, f := range []cubeanim.Face{cubeanim.FaceLeft, cubeanim.FaceFront, cubeanim.FaceRight, cubeanim.FaceBack} {
			parts = append(parts, row(f, r))
		}
		b.WriteString(strings.Join(parts, " ") + "\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(cubeanim.FaceDown, r) + "\n")
	}
	return b.String()
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n:]
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; only the log file receives records.
	logger, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer logger.Close()

	var opts []cubeanim.Option
	var session *recorder.Session
	if cfg.Storage.Journal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		dir, err := config.Dir()
		if err != nil {
			return err
		}
		stateFile, err := recorder.NewStateFile(recorder.StatePath(dir))
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		session = recorder.NewSession(db, stateFile, logger.Logger)
		if _, err := session.Start("play", version); err != nil {
			return err
		}
		opts = append(opts, cubeanim.WithCommitHook(session.Record), cubeanim.WithResetHook(session.Reset))
	}

	m := newPlayModel(cfg, logger.Logger, opts...)
	m.session = session

	if playScramble != "" {
		moves, err := notation.ParseSequence(playScramble)
		if err != nil {
			return err
		}
		for _, t := range notation.Expand(moves) {
			m.puzzle.Apply(t.Face, t.Direction)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if session != nil {
		if err := session.End(m.puzzle.IsSolved()); err != nil {
			return err
		}
		fmt.Printf("Session %s: %d turns journaled\n", session.SessionID(), session.TurnCount())
	}

	return nil
}
