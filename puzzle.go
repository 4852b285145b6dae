package cubeanim

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewHint selects a screen direction for a free-view rotation.
type ViewHint int

const (
	ViewLeft ViewHint = iota
	ViewRight
	ViewUp
	ViewDown
)

func (h ViewHint) String() string {
	switch h {
	case ViewLeft:
		return "left"
	case ViewRight:
		return "right"
	case ViewUp:
		return "up"
	case ViewDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseViewHint parses "left", "right", "up" or "down".
func ParseViewHint(s string) (ViewHint, error) {
	switch s {
	case "left", "ArrowLeft":
		return ViewLeft, nil
	case "right", "ArrowRight":
		return ViewRight, nil
	case "up", "ArrowUp":
		return ViewUp, nil
	case "down", "ArrowDown":
		return ViewDown, nil
	default:
		return 0, ErrUnknownViewHint
	}
}

// ViewRotation is the whole-puzzle display orientation.
// Yaw turns about Y, pitch about X. Neither is wrapped.
type ViewRotation struct {
	Yaw   float32
	Pitch float32
}

// SlotTransform is the world transform of one slot for the current frame.
type SlotTransform struct {
	Slot      SlotIndex
	Transform mgl32.Mat4
}

// Puzzle is the controller for one puzzle instance. It owns every slot
// orientation, the rotation direction, the in-flight face rotation and the
// view rotation.
//
// A Puzzle is not safe for concurrent use. Drive it from a single goroutine:
// input commands and Advance must not interleave.
type Puzzle struct {
	cfg       *config
	slots     Slots
	direction Direction
	anim      animator
	view      ViewRotation
	history   []Turn
	commits   int
}

// New creates a solved puzzle turning Clockwise.
func New(opts ...Option) *Puzzle {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Puzzle{
		cfg:       cfg,
		slots:     NewSlots(cfg.spacing),
		direction: Clockwise,
	}
}

// IssueFaceRotation starts rotating face f using the current direction.
// While another rotation is in flight, or for an unknown face, it does
// nothing. The result reports whether the command was accepted.
func (p *Puzzle) IssueFaceRotation(f Face) bool {
	return p.anim.start(f, p.direction)
}

// IssueViewRotation nudges the view by one step. It always applies,
// regardless of any face rotation in flight. Unknown hints are ignored.
func (p *Puzzle) IssueViewRotation(h ViewHint) {
	switch h {
	case ViewLeft:
		p.view.Yaw -= p.cfg.viewStep
	case ViewRight:
		p.view.Yaw += p.cfg.viewStep
	case ViewUp:
		p.view.Pitch -= p.cfg.viewStep
	case ViewDown:
		p.view.Pitch += p.cfg.viewStep
	}
}

// ToggleDirection flips the rotation direction and returns the new value.
// While a face rotation is in flight nothing changes and the current
// direction is returned.
func (p *Puzzle) ToggleDirection() Direction {
	if p.anim.rotating() {
		return p.direction
	}
	p.direction = p.direction.Opposite()
	return p.direction
}

// Advance moves the in-flight rotation forward by one frame of elapsed time.
// When the rotation reaches 90 degrees the turn is committed to the slots.
// Negative elapsed time counts as zero.
func (p *Puzzle) Advance(elapsed time.Duration) {
	if !p.anim.rotating() {
		return
	}
	secs := sanitizeElapsed(elapsed, p.cfg.maxFrameElapsed)
	finished, done := p.anim.step(p.cfg.faceSpeed * secs)
	if !done {
		return
	}
	p.commit(finished)
}

// Apply commits a quarter turn immediately, without animation, as if a
// rotation in direction d had just finished. It is rejected while a face
// rotation is in flight. The current direction is not changed.
func (p *Puzzle) Apply(f Face, d Direction) bool {
	if p.anim.rotating() || !f.Valid() || !d.Valid() {
		return false
	}
	p.commit(ActiveRotation{Face: f, Direction: d, Angle: HalfPi})
	return true
}

func (p *Puzzle) commit(r ActiveRotation) {
	p.slots.Commit(r.Face, r.Direction)
	p.commits++

	t := Turn{
		Seq:       p.commits,
		Face:      r.Face,
		Direction: r.Direction,
		At:        p.cfg.now(),
	}
	p.history = append(p.history, t)
	if limit := p.cfg.historyLimit; limit > 0 && len(p.history) > limit {
		p.history = append(p.history[:0:0], p.history[len(p.history)-limit:]...)
	}

	if p.cfg.onCommit != nil {
		p.cfg.onCommit(t)
	}
}

// Snapshot returns the world transform of every slot for drawing:
//
//	T(position) * Ry(yaw) * Rx(pitch) * [R(angle, axis)] * T(translation) * orientation
//
// The bracketed term applies only to members of the face currently rotating.
// Snapshot has no side effects.
func (p *Puzzle) Snapshot() []SlotTransform {
	base := mgl32.Translate3D(p.cfg.position.X(), p.cfg.position.Y(), p.cfg.position.Z()).
		Mul4(mgl32.HomogRotate3DY(p.view.Yaw)).
		Mul4(mgl32.HomogRotate3DX(p.view.Pitch))

	var spin mgl32.Mat4
	active := p.anim.active
	if active != nil {
		spin = base.Mul4(mgl32.HomogRotate3D(active.Angle, active.Axis))
	}

	out := make([]SlotTransform, SlotCount)
	for i := range p.slots {
		c := &p.slots[i]
		idx := SlotIndex(i)

		m := base
		if active != nil && active.Face.Contains(idx) {
			m = spin
		}
		tr := c.translation
		m = m.Mul4(mgl32.Translate3D(tr.X(), tr.Y(), tr.Z())).Mul4(c.Orientation.Rotation)

		out[i] = SlotTransform{Slot: idx, Transform: m}
	}
	return out
}

// Direction returns the current rotation direction.
func (p *Puzzle) Direction() Direction {
	return p.direction
}

// Active returns the in-flight face rotation, if any.
func (p *Puzzle) Active() (ActiveRotation, bool) {
	if p.anim.active == nil {
		return ActiveRotation{}, false
	}
	return *p.anim.active, true
}

// Rotating reports whether a face rotation is in flight.
func (p *Puzzle) Rotating() bool {
	return p.anim.rotating()
}

// View returns the current view rotation.
func (p *Puzzle) View() ViewRotation {
	return p.view
}

// Cubie returns a copy of the cubie held at slot i.
func (p *Puzzle) Cubie(i SlotIndex) Cubie {
	return p.slots[i]
}

// Orientations returns a copy of every slot's committed orientation.
func (p *Puzzle) Orientations() [SlotCount]Orientation {
	return p.slots.Orientations()
}

// History returns the committed turns, oldest first.
func (p *Puzzle) History() []Turn {
	out := make([]Turn, len(p.history))
	copy(out, p.history)
	return out
}

// Commits returns the number of turns committed since creation or Reset.
func (p *Puzzle) Commits() int {
	return p.commits
}

// Reset returns the puzzle to the solved state, Clockwise, with no
// rotation in flight and the view reset. Turn numbering starts again at 1.
func (p *Puzzle) Reset() {
	p.slots = NewSlots(p.cfg.spacing)
	p.direction = Clockwise
	p.anim = animator{}
	p.view = ViewRotation{}
	p.history = nil
	p.commits = 0

	if p.cfg.onReset != nil {
		p.cfg.onReset()
	}
}
