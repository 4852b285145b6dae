package cubeanim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Color represents a sticker colour.
// Every cubie is painted the same way; which colour shows on a face of the
// puzzle depends only on the orientation held in the slot.
type Color byte

const (
	Red    Color = 0 // local -Z side, Front when solved
	Orange Color = 1 // local +Z side, Back when solved
	Yellow Color = 2 // local +Y side, Up when solved
	Green  Color = 3 // local -X side, Right when solved
	Blue   Color = 4 // local +X side, Left when solved
	White  Color = 5 // local -Y side, Down when solved
	None   Color = 255
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Orange:
		return "O"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case White:
		return "W"
	default:
		return "?"
	}
}

// sideColor returns the colour painted on the local side of a cubie
// facing grid direction d.
func sideColor(d GridCoordinate) Color {
	switch d {
	case GridCoordinate{Z: -1}:
		return Red
	case GridCoordinate{Z: 1}:
		return Orange
	case GridCoordinate{X: -1}:
		return Green
	case GridCoordinate{X: 1}:
		return Blue
	case GridCoordinate{Y: -1}:
		return White
	case GridCoordinate{Y: 1}:
		return Yellow
	default:
		return None
	}
}

// Net is the visible sticker layout of the committed puzzle.
// Net[face][k] is the sticker on local index k of Face.Members.
//
//	0 1 2
//	3 4 5
//	6 7 8
type Net [6][9]Color

// Net returns the sticker colours of the committed state.
// The in-flight rotation and the view rotation are not included.
func (p *Puzzle) Net() Net {
	return p.slots.Net()
}

// Net computes the sticker layout from the slot orientations.
func (s *Slots) Net() Net {
	var n Net
	for _, f := range Faces {
		normal := f.Normal()
		world := mgl32.Vec4{float32(normal.X), float32(normal.Y), float32(normal.Z), 0}
		for k, slot := range f.Members() {
			// Inverse of a rotation is its transpose.
			local := s[slot].Orientation.Rotation.Transpose().Mul4x1(world)
			n[f][k] = sideColor(GridCoordinate{
				X: snapUnit(local.X()),
				Y: snapUnit(local.Y()),
				Z: snapUnit(local.Z()),
			})
		}
	}
	return n
}

// IsSolved returns true if every face shows a single colour.
func (n Net) IsSolved() bool {
	for _, f := range Faces {
		centre := n[f][4]
		for k := 0; k < 9; k++ {
			if n[f][k] != centre {
				return false
			}
		}
	}
	return true
}

// IsSolved returns true if the committed puzzle shows a single colour on
// every face.
func (p *Puzzle) IsSolved() bool {
	return p.Net().IsSolved()
}

// String returns a text representation of the net:
// Up on top, then Left Front Right Back side by side, then Down.
func (n Net) String() string {
	result := ""

	// Up face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += n[FaceUp][row*3+col].String() + " "
		}
		result += "\n"
	}

	// Left, Front, Right, Back (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{FaceLeft, FaceFront, FaceRight, FaceBack} {
			for col := 0; col < 3; col++ {
				result += n[face][row*3+col].String() + " "
			}
		}
		result += "\n"
	}

	// Down face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += n[FaceDown][row*3+col].String() + " "
		}
		result += "\n"
	}

	return result
}

func snapUnit(v float32) int {
	return int(math.Round(float64(v)))
}
