package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/logging"
	"github.com/SeamusWaldron/cubeanim/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const frame = 16 * time.Millisecond

func newTestDriver(t *testing.T, opts Options) (*Driver, *time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	opts.Logger = logging.Discard()
	opts.Now = func() time.Time { return now }
	d := New(opts)
	d.last = now
	return d, &now
}

// advance runs ticks until the puzzle is idle.
func advance(t *testing.T, d *Driver, now *time.Time) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		*now = now.Add(frame)
		d.tick(*now)
		if !d.puzzle.Rotating() {
			return
		}
	}
	t.Fatal("rotation did not finish")
}

func TestFaceCommandCommits(t *testing.T) {
	var turns []cubeanim.Turn
	m := metrics.New()
	d, now := newTestDriver(t, Options{
		Metrics:  m,
		OnCommit: func(turn cubeanim.Turn) { turns = append(turns, turn) },
	})

	res := d.handle(Command{Type: CmdFace, Face: "R"})
	if !res.Accepted || res.Frame.Active == nil || res.Frame.Active.Face != "right" {
		t.Fatalf("result = %+v", res)
	}

	// A second face command while rotating is dropped.
	if res := d.handle(Command{Type: CmdFace, Face: "up"}); res.Accepted {
		t.Error("face command while rotating should be rejected")
	}

	advance(t, d, now)

	if len(turns) != 1 || turns[0].Notation() != "R" {
		t.Fatalf("commits = %v", turns)
	}
	if got := testutil.ToFloat64(m.FaceCommands.WithLabelValues("up", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v", got)
	}
	if got := testutil.ToFloat64(m.Commits.WithLabelValues("right", "Clockwise")); got != 1 {
		t.Errorf("commit counter = %v", got)
	}

	snap := d.handle(Command{Type: CmdSnapshot})
	if snap.Frame.Solved || snap.Frame.Commits != 1 || snap.Frame.History != "R" {
		t.Errorf("snapshot = %+v", snap.Frame)
	}
	if len(snap.Frame.Transforms) != cubeanim.SlotCount {
		t.Errorf("got %d transforms", len(snap.Frame.Transforms))
	}
}

func TestToggleAndView(t *testing.T) {
	d, _ := newTestDriver(t, Options{})

	res := d.handle(Command{Type: CmdToggle})
	if !res.Accepted || res.Frame.Direction != "Counter-Clockwise" {
		t.Errorf("toggle = %+v", res)
	}

	d.handle(Command{Type: CmdFace, Face: "front"})
	if res := d.handle(Command{Type: CmdToggle}); res.Accepted {
		t.Error("toggle while rotating should be rejected")
	}

	res = d.handle(Command{Type: CmdView, View: "right"})
	if !res.Accepted || res.Frame.View.Yaw <= 0 {
		t.Errorf("view = %+v", res.Frame.View)
	}
}

func TestBadCommands(t *testing.T) {
	d, _ := newTestDriver(t, Options{})
	for _, cmd := range []Command{
		{Type: CmdFace, Face: "middle"},
		{Type: CmdView, View: "sideways"},
		{Type: CmdScramble, Moves: "R Q"},
		{Type: "explode"},
	} {
		res := d.handle(cmd)
		if res.Accepted || res.Error == "" {
			t.Errorf("%+v: result = %+v", cmd, res)
		}
	}
}

func TestScrambleAndReset(t *testing.T) {
	resets := 0
	d, _ := newTestDriver(t, Options{OnReset: func() { resets++ }})

	res := d.handle(Command{Type: CmdScramble, Moves: "R U R' U'"})
	if !res.Accepted || res.Frame.Solved || res.Frame.Commits != 4 {
		t.Fatalf("scramble = %+v", res.Frame)
	}
	if res.Frame.History != "R U R' U'" {
		t.Errorf("history = %q", res.Frame.History)
	}

	res = d.handle(Command{Type: CmdReset})
	if !res.Frame.Solved || res.Frame.Commits != 0 || resets != 1 {
		t.Errorf("reset = %+v, hook fired %d times", res.Frame, resets)
	}
	for face, stickers := range res.Frame.Net {
		if len(stickers) != 9 {
			t.Errorf("%s: %q", face, stickers)
		}
	}
}

func TestPublishOnlyWhenChanged(t *testing.T) {
	d, now := newTestDriver(t, Options{Buffer: 256})
	frames, cancel := d.Subscribe()
	defer cancel()

	// The first tick publishes the initial frame.
	*now = now.Add(frame)
	d.tick(*now)
	*now = now.Add(frame)
	d.tick(*now)
	if n := len(frames); n != 1 {
		t.Fatalf("idle ticks published %d frames, want 1", n)
	}
	<-frames

	d.handle(Command{Type: CmdFace, Face: "D"})
	advance(t, d, now)

	var last Frame
	n := len(frames)
	for i := 0; i < n; i++ {
		last = <-frames
	}
	if n < 2 {
		t.Errorf("rotation published %d frames", n)
	}
	if last.Active != nil || last.Commits != 1 {
		t.Errorf("last frame = %+v", last)
	}
	if d.Latest().Seq != last.Seq {
		t.Errorf("Latest seq = %d, want %d", d.Latest().Seq, last.Seq)
	}
}

func TestSlowSubscriberDropsFrames(t *testing.T) {
	m := metrics.New()
	d, now := newTestDriver(t, Options{Buffer: 1, Metrics: m})
	frames, cancel := d.Subscribe()

	d.handle(Command{Type: CmdFace, Face: "B"})
	advance(t, d, now)

	if testutil.ToFloat64(m.DroppedFrames) == 0 {
		t.Error("expected dropped frames for a full buffer")
	}
	if f := <-frames; f.Commits != 1 || f.Active != nil {
		t.Errorf("buffered frame should be the latest, got %+v", f)
	}

	cancel()
	cancel()
	if got := testutil.ToFloat64(m.Subscribers); got != 0 {
		t.Errorf("subscribers = %v after cancel", got)
	}
}

func TestRunAndSubmit(t *testing.T) {
	d := New(Options{Interval: time.Millisecond, Logger: logging.Discard()})
	frames, cancel := d.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	res, err := d.Submit(ctx, Command{Type: CmdFace, Face: "L"})
	if err != nil || !res.Accepted {
		t.Fatalf("Submit = %+v, %v", res, err)
	}

	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case f := <-frames:
			done = f.Commits == 1
		case <-deadline:
			t.Fatal("no committed frame")
		}
	}

	stop()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v", err)
	}
	if _, err := d.Submit(context.Background(), Command{Type: CmdSnapshot}); !errors.Is(err, ErrStopped) {
		t.Errorf("Submit after stop = %v", err)
	}
}
