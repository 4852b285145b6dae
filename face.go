package cubeanim

import "strings"

// Face identifies one of the six 9-slot slices of the grid.
type Face int

const (
	FaceFront Face = iota // z = -1
	FaceBack              // z = +1
	FaceRight             // x = -1
	FaceLeft              // x = +1
	FaceDown              // y = -1
	FaceUp                // y = +1
)

// Faces lists every face in declaration order.
var Faces = [6]Face{FaceFront, FaceBack, FaceRight, FaceLeft, FaceDown, FaceUp}

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceDown:
		return "down"
	case FaceUp:
		return "up"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter notation for the face.
func (f Face) Letter() string {
	switch f {
	case FaceFront:
		return "F"
	case FaceBack:
		return "B"
	case FaceRight:
		return "R"
	case FaceLeft:
		return "L"
	case FaceDown:
		return "D"
	case FaceUp:
		return "U"
	default:
		return "?"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= FaceFront && f <= FaceUp
}

// Members returns the 9 slots of the face in row-major order of the
// face's local 3x3 layout. Local index 4 is always the face centre.
// An invalid face returns the zero array; use MembersOf to tell them apart.
func (f Face) Members() [9]SlotIndex {
	m, _ := MembersOf(f)
	return m
}

// MembersOf returns the 9 slots of a face, or false for an unknown face.
func MembersOf(f Face) ([9]SlotIndex, bool) {
	var m [9]SlotIndex
	for k := 0; k < 9; k++ {
		switch f {
		case FaceFront:
			m[k] = SlotIndex(k)
		case FaceBack:
			m[k] = SlotIndex(k + 18)
		case FaceRight:
			m[k] = SlotIndex(k * 3)
		case FaceLeft:
			m[k] = SlotIndex(k*3 + 2)
		case FaceDown:
			m[k] = SlotIndex((k/3)*9 + k%3)
		case FaceUp:
			m[k] = SlotIndex((k/3)*9 + k%3 + 6)
		default:
			return [9]SlotIndex{}, false
		}
	}
	return m, true
}

// Contains reports whether slot i belongs to the face.
func (f Face) Contains(i SlotIndex) bool {
	if !i.Valid() {
		return false
	}
	n := int(i)
	switch f {
	case FaceFront:
		return n < 9
	case FaceBack:
		return n >= 18
	case FaceRight:
		return n%3 == 0
	case FaceLeft:
		return n%3 == 2
	case FaceDown:
		return n%9 < 3
	case FaceUp:
		return n%9 >= 6
	default:
		return false
	}
}

// Normal returns the outward grid direction of the face.
func (f Face) Normal() GridCoordinate {
	switch f {
	case FaceFront:
		return GridCoordinate{Z: -1}
	case FaceBack:
		return GridCoordinate{Z: 1}
	case FaceRight:
		return GridCoordinate{X: -1}
	case FaceLeft:
		return GridCoordinate{X: 1}
	case FaceDown:
		return GridCoordinate{Y: -1}
	case FaceUp:
		return GridCoordinate{Y: 1}
	default:
		return GridCoordinate{}
	}
}

// ParseFace parses a face name or notation letter.
// Accepts "front", "F", "f" and so on.
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "front":
		return FaceFront, nil
	case "b", "back":
		return FaceBack, nil
	case "r", "right":
		return FaceRight, nil
	case "l", "left":
		return FaceLeft, nil
	case "d", "down":
		return FaceDown, nil
	case "u", "up":
		return FaceUp, nil
	default:
		return 0, ErrUnknownFace
	}
}
