package cubeanim

import (
	"math"
	"testing"
	"time"
)

func TestAnimatorStartRejectsWhileRotating(t *testing.T) {
	var a animator
	if !a.start(FaceFront, Clockwise) {
		t.Fatal("first start should be accepted")
	}
	before := *a.active
	if a.start(FaceUp, CounterClockwise) {
		t.Error("second start should be rejected")
	}
	if *a.active != before {
		t.Errorf("active rotation changed: %+v -> %+v", before, *a.active)
	}
}

func TestAnimatorStartSetsAxis(t *testing.T) {
	for _, f := range Faces {
		for _, d := range directions {
			var a animator
			a.start(f, d)
			if a.active.Angle != 0 {
				t.Errorf("%v %v: start angle %v", f, d, a.active.Angle)
			}
			if a.active.Axis != SignedAxis(f, d) {
				t.Errorf("%v %v: axis %v, want %v", f, d, a.active.Axis, SignedAxis(f, d))
			}
		}
	}
}

func TestAnimatorThreshold(t *testing.T) {
	const eps = float32(0.01)

	var a animator
	a.start(FaceFront, Clockwise)
	a.active.Angle = HalfPi - eps

	// Short of the threshold: keep rotating, no commit.
	start := a.active.Angle
	if _, done := a.step(eps / 2); done {
		t.Fatal("step below threshold should not finish")
	}
	if got, want := a.active.Angle, start+eps/2; got != want {
		t.Errorf("angle = %v, want %v", got, want)
	}

	// Crossing the threshold: finish once, angle clamped, back to idle.
	finished, done := a.step(eps)
	if !done {
		t.Fatal("step across threshold should finish")
	}
	if finished.Angle != HalfPi {
		t.Errorf("finished angle = %v, want pi/2", finished.Angle)
	}
	if finished.Face != FaceFront || finished.Direction != Clockwise {
		t.Errorf("finished = %+v", finished)
	}
	if a.rotating() {
		t.Error("animator should be idle after finishing")
	}
	if _, done := a.step(1); done {
		t.Error("idle animator should never finish again")
	}
}

func TestAnimatorIgnoresInvalidSteps(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, delta := range []float32{-1, 0, nan, inf, -inf} {
		var a animator
		a.start(FaceLeft, Clockwise)
		a.active.Angle = 0.5
		if _, done := a.step(delta); done {
			t.Errorf("step(%v) should not finish", delta)
		}
		if a.active.Angle != 0.5 {
			t.Errorf("step(%v) changed angle to %v", delta, a.active.Angle)
		}
	}
}

func TestSanitizeElapsed(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		limit   time.Duration
		want    float32
	}{
		{-time.Second, 0, 0},
		{0, 0, 0},
		{500 * time.Millisecond, 0, 0.5},
		{2 * time.Second, 250 * time.Millisecond, 0.25},
		{100 * time.Millisecond, 250 * time.Millisecond, 0.1},
	}
	for _, tt := range tests {
		if got := sanitizeElapsed(tt.elapsed, tt.limit); got != tt.want {
			t.Errorf("sanitizeElapsed(%v, %v) = %v, want %v", tt.elapsed, tt.limit, got, tt.want)
		}
	}
}
