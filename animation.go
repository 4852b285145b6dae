package cubeanim

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ActiveRotation is the single in-flight face rotation.
// Angle runs from 0 towards pi/2; Axis is fixed when the rotation starts.
type ActiveRotation struct {
	Face      Face
	Direction Direction
	Angle     float32
	Axis      mgl32.Vec3
}

// Progress returns how far the rotation has gone, in [0, 1).
func (a ActiveRotation) Progress() float32 {
	return a.Angle / HalfPi
}

// animator owns at most one ActiveRotation. A nil active is Idle.
type animator struct {
	active *ActiveRotation
}

// rotating reports whether a face rotation is in flight.
func (a *animator) rotating() bool {
	return a.active != nil
}

// start begins rotating face f. It is a no-op returning false while
// another rotation is in flight or for an unknown face.
func (a *animator) start(f Face, d Direction) bool {
	if a.active != nil || !f.Valid() || !d.Valid() {
		return false
	}
	a.active = &ActiveRotation{
		Face:      f,
		Direction: d,
		Angle:     0,
		Axis:      SignedAxis(f, d),
	}
	return true
}

// step advances the angle by delta. When the angle reaches pi/2 the
// rotation is finished: the machine returns to Idle and the finished
// rotation is returned with done=true. Overshoot is dropped.
func (a *animator) step(delta float32) (finished ActiveRotation, done bool) {
	if a.active == nil {
		return ActiveRotation{}, false
	}
	// Negative, NaN and infinite steps are treated as zero.
	if !(delta > 0) || math.IsInf(float64(delta), 1) {
		return *a.active, false
	}

	next := a.active.Angle + delta
	if next < HalfPi {
		a.active.Angle = next
		return *a.active, false
	}

	finished = *a.active
	finished.Angle = HalfPi
	a.active = nil
	return finished, true
}

// sanitizeElapsed turns caller-supplied frame time into seconds that are
// safe to integrate: negative values become zero and anything above limit
// (when limit > 0) is capped.
func sanitizeElapsed(elapsed, limit time.Duration) float32 {
	if elapsed <= 0 {
		return 0
	}
	if limit > 0 && elapsed > limit {
		elapsed = limit
	}
	return float32(elapsed.Seconds())
}
