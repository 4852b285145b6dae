package cubeanim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var directions = []Direction{Clockwise, CounterClockwise}

// rotateCoordinate applies an exact quarter turn to a grid coordinate.
func rotateCoordinate(q mgl32.Mat4, c GridCoordinate) GridCoordinate {
	v := q.Mul4x1(mgl32.Vec4{float32(c.X), float32(c.Y), float32(c.Z), 0})
	return GridCoordinate{snapUnit(v.X()), snapUnit(v.Y()), snapUnit(v.Z())}
}

// scrambled returns slots with a few turns applied so orientations differ.
func scrambled() Slots {
	s := NewSlots(1)
	s.Commit(FaceRight, Clockwise)
	s.Commit(FaceUp, CounterClockwise)
	s.Commit(FaceBack, Clockwise)
	s.Commit(FaceDown, Clockwise)
	return s
}

func TestTurnTable(t *testing.T) {
	tests := []struct {
		face    Face
		cwAxis  mgl32.Vec3
		cwFlag  bool
		ccwFlag bool
	}{
		{FaceFront, mgl32.Vec3{0, 0, 1}, true, false},
		{FaceBack, mgl32.Vec3{0, 0, -1}, false, true},
		{FaceRight, mgl32.Vec3{1, 0, 0}, true, false},
		{FaceLeft, mgl32.Vec3{-1, 0, 0}, false, true},
		{FaceDown, mgl32.Vec3{0, 1, 0}, false, true},
		{FaceUp, mgl32.Vec3{0, -1, 0}, true, false},
	}
	for _, tt := range tests {
		if got := SignedAxis(tt.face, Clockwise); got != tt.cwAxis {
			t.Errorf("%v clockwise axis = %v, want %v", tt.face, got, tt.cwAxis)
		}
		if got := SignedAxis(tt.face, CounterClockwise); got != tt.cwAxis.Mul(-1) {
			t.Errorf("%v counter-clockwise axis = %v, want %v", tt.face, got, tt.cwAxis.Mul(-1))
		}
		if got := PermutationFlag(tt.face, Clockwise); got != tt.cwFlag {
			t.Errorf("%v clockwise flag = %v, want %v", tt.face, got, tt.cwFlag)
		}
		if got := PermutationFlag(tt.face, CounterClockwise); got != tt.ccwFlag {
			t.Errorf("%v counter-clockwise flag = %v, want %v", tt.face, got, tt.ccwFlag)
		}
	}
}

func TestQuarterTurnIsExact(t *testing.T) {
	for _, axis := range []mgl32.Vec3{axisX, axisY, axisZ, axisX.Mul(-1)} {
		q := QuarterTurn(axis)
		for i, v := range q {
			if v != 0 && v != 1 && v != -1 {
				t.Errorf("axis %v: entry %d = %v, want -1, 0 or 1", axis, i, v)
			}
		}
		if got := q.Mul4(q).Mul4(q).Mul4(q); got != mgl32.Ident4() {
			t.Errorf("axis %v: q^4 = %v, want identity", axis, got)
		}
	}
}

func TestCommitIsPhysicalQuarterTurn(t *testing.T) {
	for _, f := range Faces {
		for _, d := range directions {
			s := NewSlots(1)
			if !s.Commit(f, d) {
				t.Fatalf("%v %v: Commit returned false", f, d)
			}
			q := QuarterTurn(SignedAxis(f, d))

			for _, from := range f.Members() {
				to, ok := SlotAt(rotateCoordinate(q, from.Coordinate()))
				if !ok || !f.Contains(to) {
					t.Fatalf("%v %v: slot %d rotates off the face", f, d, from)
				}
				got := s[to].Orientation
				if got.Origin != from {
					t.Errorf("%v %v: slot %d holds origin %d, want %d", f, d, to, got.Origin, from)
				}
				if got.Rotation != q {
					t.Errorf("%v %v: slot %d rotation %v, want %v", f, d, to, got.Rotation, q)
				}
			}
		}
	}
}

func TestCommitLeavesOtherSlotsUntouched(t *testing.T) {
	for _, f := range Faces {
		for _, d := range directions {
			s := scrambled()
			before := s.Orientations()
			s.Commit(f, d)
			after := s.Orientations()
			for i := SlotIndex(0); i < SlotCount; i++ {
				if f.Contains(i) {
					continue
				}
				if after[i] != before[i] {
					t.Errorf("%v %v: non-member slot %d changed", f, d, i)
				}
			}
		}
	}
}

func TestCommitKeepsCentre(t *testing.T) {
	for _, f := range Faces {
		for _, d := range directions {
			s := NewSlots(1)
			s.Commit(f, d)
			centre := f.Members()[4]
			if s[centre].Orientation.Origin != centre {
				t.Errorf("%v %v: centre slot %d now holds origin %d", f, d, centre, s[centre].Orientation.Origin)
			}
		}
	}
}

func TestFourCommitsRestore(t *testing.T) {
	for _, f := range Faces {
		for _, d := range directions {
			s := scrambled()
			before := s.Orientations()
			for i := 0; i < 4; i++ {
				s.Commit(f, d)
			}
			if after := s.Orientations(); after != before {
				t.Errorf("%v %v x 4 should restore every slot", f, d)
			}
		}
	}
}

func TestOppositeDirectionCancels(t *testing.T) {
	for _, f := range Faces {
		for _, d := range directions {
			s := scrambled()
			before := s.Orientations()
			s.Commit(f, d)
			s.Commit(f, d.Opposite())
			if after := s.Orientations(); after != before {
				t.Errorf("%v %v then %v should restore every slot", f, d, d.Opposite())
			}
		}
	}
}

func TestPermutationPasses(t *testing.T) {
	// Row swap then diagonal swap, tracked by origin on an identity arena.
	s := NewSlots(1)
	m := FaceFront.Members()
	s.permute(m, true)
	wantCW := [9]SlotIndex{6, 3, 0, 7, 4, 1, 8, 5, 2}
	for k, slot := range m {
		if got := s[slot].Orientation.Origin; got != wantCW[k] {
			t.Errorf("clockwise local %d: origin %d, want %d", k, got, wantCW[k])
		}
	}

	s = NewSlots(1)
	s.permute(m, false)
	wantCCW := [9]SlotIndex{2, 5, 8, 1, 4, 7, 0, 3, 6}
	for k, slot := range m {
		if got := s[slot].Orientation.Origin; got != wantCCW[k] {
			t.Errorf("counter-clockwise local %d: origin %d, want %d", k, got, wantCCW[k])
		}
	}
}

func TestCommitRejectsUnknown(t *testing.T) {
	s := NewSlots(1)
	before := s.Orientations()
	if s.Commit(Face(9), Clockwise) {
		t.Error("Commit should reject an unknown face")
	}
	if s.Commit(FaceFront, Direction(0)) {
		t.Error("Commit should reject an unknown direction")
	}
	if s.Orientations() != before {
		t.Error("rejected commits must not change any slot")
	}
}
