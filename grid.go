package cubeanim

import "fmt"

// SlotCount is the number of fixed slots in a 3x3x3 puzzle.
const SlotCount = 27

// SlotIndex addresses one of the 27 fixed slots.
// Slots never move; only the orientation stored in them does.
type SlotIndex int

// GridCoordinate is a slot position with each component in {-1, 0, 1}.
type GridCoordinate struct {
	X, Y, Z int
}

// Valid reports whether the index addresses a slot.
func (i SlotIndex) Valid() bool {
	return i >= 0 && i < SlotCount
}

// Coordinate returns the grid coordinate of the slot.
//
//	x = i%3 - 1, y = (i/3)%3 - 1, z = i/9 - 1
func (i SlotIndex) Coordinate() GridCoordinate {
	n := int(i)
	return GridCoordinate{
		X: n%3 - 1,
		Y: (n/3)%3 - 1,
		Z: n/9 - 1,
	}
}

// SlotAt returns the slot at a grid coordinate.
// Returns false if any component is outside {-1, 0, 1}.
func SlotAt(c GridCoordinate) (SlotIndex, bool) {
	if !c.Valid() {
		return 0, false
	}
	return SlotIndex((c.X + 1) + (c.Y+1)*3 + (c.Z+1)*9), true
}

// Valid reports whether every component is in {-1, 0, 1}.
func (c GridCoordinate) Valid() bool {
	return inUnit(c.X) && inUnit(c.Y) && inUnit(c.Z)
}

// Outward returns how many components are non-zero:
// 0 for the core, 1 for a face centre, 2 for an edge, 3 for a corner.
func (c GridCoordinate) Outward() int {
	n := 0
	for _, v := range [3]int{c.X, c.Y, c.Z} {
		if v != 0 {
			n++
		}
	}
	return n
}

func (c GridCoordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

func inUnit(v int) bool {
	return v >= -1 && v <= 1
}
