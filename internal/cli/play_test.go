package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/logging"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// frames feeds n frame messages 16ms apart, starting at start.
func frames(m *playModel, start time.Time, n int) time.Time {
	t := start
	for i := 0; i < n; i++ {
		m.Update(frameMsg(t))
		t = t.Add(16 * time.Millisecond)
	}
	return t
}

func TestPlayModelFaceTurn(t *testing.T) {
	m := newPlayModel(config.Default(), logging.Discard())

	m.Update(runeKey("r"))
	a, ok := m.puzzle.Active()
	if !ok || a.Face != cubeanim.FaceFront {
		t.Fatalf("active = %+v, %v", a, ok)
	}

	// Another face key while turning is ignored.
	m.Update(runeKey("g"))
	if m.rejected != 1 {
		t.Errorf("rejected = %d, want 1", m.rejected)
	}

	frames(m, time.Unix(0, 0), 200)

	if m.puzzle.Rotating() || m.puzzle.Commits() != 1 {
		t.Fatalf("rotating = %v, commits = %d", m.puzzle.Rotating(), m.puzzle.Commits())
	}
	if m.puzzle.IsSolved() {
		t.Error("one turn should scramble the puzzle")
	}
	if v := m.View(); !strings.Contains(v, "Moves: F") {
		t.Errorf("view missing history:\n%s", v)
	}
}

func TestPlayModelToggleAndView(t *testing.T) {
	m := newPlayModel(config.Default(), logging.Discard())

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.puzzle.Direction() != cubeanim.CounterClockwise {
		t.Errorf("direction = %v", m.puzzle.Direction())
	}
	if !strings.Contains(m.View(), "Counter-Clockwise") {
		t.Error("view should show the direction")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	v := m.puzzle.View()
	if v.Yaw >= 0 || v.Pitch <= 0 {
		t.Errorf("view = %+v", v)
	}
}

func TestPlayModelCustomKeysAndReset(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Up = "k"
	m := newPlayModel(cfg, logging.Discard())

	m.Update(runeKey("k"))
	frames(m, time.Unix(0, 0), 200)
	if m.puzzle.Commits() != 1 || m.puzzle.History()[0].Face != cubeanim.FaceUp {
		t.Fatalf("history = %v", m.puzzle.History())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.puzzle.Commits() != 0 || !m.puzzle.IsSolved() {
		t.Error("ctrl+r should reset")
	}
}

func TestPlayModelQuit(t *testing.T) {
	m := newPlayModel(config.Default(), logging.Discard())
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestRenderNetSolved(t *testing.T) {
	out := renderNet(cubeanim.New().Net())
	if lines := strings.Count(out, "\n"); lines != 9 {
		t.Errorf("net has %d lines, want 9", lines)
	}
}
