// Package driver runs a Puzzle on its own goroutine. Commands from any
// number of callers are serialised onto that goroutine, a ticker advances
// the animation, and every changed frame is published to subscribers.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/metrics"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
)

// ErrStopped is returned by Submit once the driver loop has exited.
var ErrStopped = errors.New("driver: stopped")

// Command types.
const (
	CmdFace     = "face"
	CmdView     = "view"
	CmdToggle   = "toggle"
	CmdReset    = "reset"
	CmdScramble = "scramble"
	CmdSnapshot = "snapshot"
)

// Command is one input event. Face takes a face name or letter, View a
// hint (left, right, up, down) and Scramble a move sequence.
type Command struct {
	Type  string `json:"type" binding:"required"`
	Face  string `json:"face,omitempty"`
	View  string `json:"view,omitempty"`
	Moves string `json:"moves,omitempty"`
}

// Result reports the outcome of a command along with the frame after it.
type Result struct {
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
	Frame    Frame  `json:"frame"`
}

// Options configures a Driver.
type Options struct {
	// Interval between frames. Defaults to 60 fps.
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// OnCommit and OnReset are called on the driver goroutine.
	OnCommit func(cubeanim.Turn)
	OnReset  func()
	Now      func() time.Time

	// Buffer is the per-subscriber frame buffer.
	Buffer int
}

type request struct {
	cmd   Command
	reply chan Result
}

// Driver owns a Puzzle. All access to it happens on the Run goroutine.
type Driver struct {
	puzzle  *cubeanim.Puzzle
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Metrics

	requests chan request
	done     chan struct{}

	seq   uint64
	dirty bool
	last  time.Time

	mu     sync.Mutex
	subs   map[int]chan Frame
	nextID int
	latest Frame
}

// New creates a driver around a fresh puzzle built from puzzleOpts.
// The driver installs its own commit hook, which forwards to opts.OnCommit,
// and its own clock.
func New(opts Options, puzzleOpts ...cubeanim.Option) *Driver {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 8
	}

	d := &Driver{
		opts:     opts,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		requests: make(chan request),
		done:     make(chan struct{}),
		subs:     make(map[int]chan Frame),
		dirty:    true,
	}
	puzzleOpts = append(puzzleOpts,
		cubeanim.WithCommitHook(d.onCommit),
		cubeanim.WithClock(opts.Now),
	)
	if opts.OnReset != nil {
		puzzleOpts = append(puzzleOpts, cubeanim.WithResetHook(opts.OnReset))
	}
	d.puzzle = cubeanim.New(puzzleOpts...)
	return d
}

func (d *Driver) onCommit(t cubeanim.Turn) {
	d.logger.Debug("turn committed", "seq", t.Seq, "turn", t.Notation())
	d.metrics.Commit(t.Face.String(), t.Direction.String())
	d.dirty = true
	if d.opts.OnCommit != nil {
		d.opts.OnCommit(t)
	}
}

// Run drives the puzzle until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	defer close(d.done)
	defer d.closeSubscribers()

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	d.last = d.opts.Now()
	d.logger.Info("driver started", "interval", d.opts.Interval)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("driver stopped", "commits", d.puzzle.Commits())
			return ctx.Err()
		case req := <-d.requests:
			req.reply <- d.handle(req.cmd)
		case <-ticker.C:
			d.tick(d.opts.Now())
		}
	}
}

// Submit sends a command to the driver and waits for the result.
func (d *Driver) Submit(ctx context.Context, cmd Command) (Result, error) {
	req := request{cmd: cmd, reply: make(chan Result, 1)}
	select {
	case d.requests <- req:
	case <-d.done:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Subscribe registers for frames. A subscriber that falls behind loses its
// oldest buffered frames; the most recent frame is always queued. The
// channel is closed when the driver stops or cancel is called.
func (d *Driver) Subscribe() (<-chan Frame, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	ch := make(chan Frame, d.opts.Buffer)
	d.subs[id] = ch
	d.metrics.SubscriberAdded()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if c, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(c)
				d.metrics.SubscriberRemoved()
			}
		})
	}
	return ch, cancel
}

// Latest returns the most recently published frame. It is safe to call
// from any goroutine, including after Run has returned.
func (d *Driver) Latest() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest
}

func (d *Driver) closeSubscribers() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
		d.metrics.SubscriberRemoved()
	}
}

// tick advances the puzzle to now and publishes a frame if anything moved.
func (d *Driver) tick(now time.Time) {
	elapsed := now.Sub(d.last)
	d.last = now

	if d.puzzle.Rotating() {
		d.puzzle.Advance(elapsed)
		d.metrics.Frame(elapsed.Seconds())
		d.dirty = true
	}

	if d.dirty {
		d.publish(d.frame())
		d.dirty = false
	}
}

func (d *Driver) frame() Frame {
	d.seq++
	return NewFrame(d.seq, d.puzzle)
}

func (d *Driver) publish(f Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest = f
	for _, ch := range d.subs {
		select {
		case ch <- f:
		default:
			// Full: drop the oldest so the newest frame is always queued.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- f:
			default:
			}
			d.metrics.FrameDropped()
		}
	}
}

// handle applies one command on the driver goroutine.
func (d *Driver) handle(cmd Command) Result {
	accepted, err := d.apply(cmd)
	if err != nil {
		d.logger.Debug("command rejected", "type", cmd.Type, "error", err)
	}
	if accepted {
		d.dirty = true
	}

	res := Result{Accepted: accepted, Frame: d.frame()}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func (d *Driver) apply(cmd Command) (bool, error) {
	switch cmd.Type {
	case CmdFace:
		f, err := cubeanim.ParseFace(cmd.Face)
		if err != nil {
			return false, err
		}
		ok := d.puzzle.IssueFaceRotation(f)
		d.metrics.FaceCommand(f.String(), ok)
		return ok, nil

	case CmdView:
		h, err := cubeanim.ParseViewHint(cmd.View)
		if err != nil {
			return false, err
		}
		d.puzzle.IssueViewRotation(h)
		d.metrics.View(h.String())
		return true, nil

	case CmdToggle:
		if d.puzzle.Rotating() {
			return false, nil
		}
		d.puzzle.ToggleDirection()
		return true, nil

	case CmdReset:
		d.puzzle.Reset()
		return true, nil

	case CmdScramble:
		moves, err := notation.ParseSequence(cmd.Moves)
		if err != nil {
			return false, err
		}
		if d.puzzle.Rotating() {
			return false, nil
		}
		for _, t := range notation.Expand(moves) {
			d.puzzle.Apply(t.Face, t.Direction)
		}
		return true, nil

	case CmdSnapshot:
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q", cmd.Type)
	}
}
