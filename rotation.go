package cubeanim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HalfPi is the angle of one face turn.
const HalfPi = math.Pi / 2

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// turnSpec is one row of the per-face turn table.
type turnSpec struct {
	axis     mgl32.Vec3
	axisSign float32 // multiplied by the direction sign
	flipFlag bool    // permutation uses !dir instead of dir
}

// turnTable is a fixed lookup. Up/Down deliberately break the pattern
// of the other four faces; do not derive it from a formula.
var turnTable = [6]turnSpec{
	FaceFront: {axis: axisZ, axisSign: 1, flipFlag: false},
	FaceBack:  {axis: axisZ, axisSign: -1, flipFlag: true},
	FaceRight: {axis: axisX, axisSign: 1, flipFlag: false},
	FaceLeft:  {axis: axisX, axisSign: -1, flipFlag: true},
	FaceDown:  {axis: axisY, axisSign: 1, flipFlag: true},
	FaceUp:    {axis: axisY, axisSign: -1, flipFlag: false},
}

// Diagonal swap pairs in local face indices, applied after the row swap.
var (
	clockwisePairs        = [3][2]int{{1, 3}, {2, 6}, {5, 7}}
	counterClockwisePairs = [3][2]int{{0, 8}, {1, 5}, {3, 7}}
)

// SignedAxis returns the axis a face turns about for a direction.
// The zero vector is returned for an unknown face.
func SignedAxis(f Face, d Direction) mgl32.Vec3 {
	if !f.Valid() {
		return mgl32.Vec3{}
	}
	row := turnTable[f]
	return row.axis.Mul(row.axisSign * d.Sign())
}

// PermutationFlag returns the direction flag handed to the swap passes.
func PermutationFlag(f Face, d Direction) bool {
	dir := d != CounterClockwise
	if f.Valid() && turnTable[f].flipFlag {
		return !dir
	}
	return dir
}

// QuarterTurn returns the rotation by pi/2 about an axis-aligned unit axis.
// Entries are snapped to -1, 0 or 1 so repeated turns never drift.
func QuarterTurn(axis mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.HomogRotate3D(HalfPi, axis)
	for i := range m {
		m[i] = float32(math.Round(float64(m[i])))
	}
	return m
}

// Commit realises one physical 90 degree turn of a face: the member
// orientations are permuted among the 9 slots, then each one is rotated by
// a quarter turn about the face's signed axis. Slots outside the face are
// untouched. Returns false, with no change, for an unknown face or direction.
func (s *Slots) Commit(f Face, d Direction) bool {
	members, ok := MembersOf(f)
	if !ok || !d.Valid() {
		return false
	}

	s.permute(members, PermutationFlag(f, d))

	q := QuarterTurn(SignedAxis(f, d))
	for _, i := range members {
		s[i].Orientation.Rotation = q.Mul4(s[i].Orientation.Rotation)
	}
	return true
}

// permute re-homes orientations among the 9 members of a face.
// The row swap followed by a diagonal swap is a 90 degree rotation of the
// 3x3 layout; the choice of diagonal picks the sense. Local 4 never moves.
func (s *Slots) permute(m [9]SlotIndex, clockwise bool) {
	for i := 0; i < 3; i++ {
		s.Swap(m[i], m[i+6])
	}

	pairs := counterClockwisePairs
	if clockwise {
		pairs = clockwisePairs
	}
	for _, p := range pairs {
		s.Swap(m[p[0]], m[p[1]])
	}
}
