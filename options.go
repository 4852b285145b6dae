package cubeanim

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Default tuning, matching the original browser build.
const (
	DefaultFaceSpeed       = 1.5  // radians per second
	DefaultViewStep        = 0.15 // radians per view command
	DefaultSpacing         = 1.0  // world units between slot centres
	DefaultMaxFrameElapsed = 250 * time.Millisecond
)

// DefaultPosition is where the puzzle centre sits in world space.
var DefaultPosition = mgl32.Vec3{0, 0, -15}

// Option configures a Puzzle.
type Option func(*config)

type config struct {
	faceSpeed       float32
	viewStep        float32
	spacing         float32
	position        mgl32.Vec3
	maxFrameElapsed time.Duration
	historyLimit    int
	onCommit        func(Turn)
	onReset         func()
	now             func() time.Time
}

func defaultConfig() *config {
	return &config{
		faceSpeed:       DefaultFaceSpeed,
		viewStep:        DefaultViewStep,
		spacing:         DefaultSpacing,
		position:        DefaultPosition,
		maxFrameElapsed: DefaultMaxFrameElapsed,
		historyLimit:    0,
		now:             time.Now,
	}
}

// WithFaceSpeed sets the face rotation speed in radians per second.
// Non-positive values are ignored.
func WithFaceSpeed(radPerSec float32) Option {
	return func(c *config) {
		if radPerSec > 0 {
			c.faceSpeed = radPerSec
		}
	}
}

// WithViewStep sets the yaw/pitch increment of one view command.
func WithViewStep(rad float32) Option {
	return func(c *config) {
		c.viewStep = rad
	}
}

// WithSpacing sets the distance between neighbouring slot centres.
// It fixes every slot translation at construction.
func WithSpacing(units float32) Option {
	return func(c *config) {
		if units > 0 {
			c.spacing = units
		}
	}
}

// WithPosition sets the world position of the puzzle centre.
func WithPosition(p mgl32.Vec3) Option {
	return func(c *config) {
		c.position = p
	}
}

// WithMaxFrameElapsed caps the elapsed time a single Advance may consume.
// Zero disables the cap.
func WithMaxFrameElapsed(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.maxFrameElapsed = d
		}
	}
}

// WithHistoryLimit keeps only the most recent n turns in History.
// Zero (default) keeps everything.
func WithHistoryLimit(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.historyLimit = n
		}
	}
}

// WithCommitHook registers a callback fired once per committed face rotation.
// The callback runs synchronously inside Advance.
func WithCommitHook(fn func(Turn)) Option {
	return func(c *config) {
		c.onCommit = fn
	}
}

// WithResetHook registers a callback fired after every Reset.
func WithResetHook(fn func()) Option {
	return func(c *config) {
		c.onReset = fn
	}
}

// WithClock overrides the time source used to stamp turns.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
