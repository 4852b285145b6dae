package cubeanim

import "github.com/go-gl/mathgl/mgl32"

// Orientation is the rotation stored in a slot.
// Origin names the slot the value started in, so the permutation
// produced by face turns can be observed exactly.
type Orientation struct {
	Origin   SlotIndex
	Rotation mgl32.Mat4
}

// Cubie is one fixed slot of the puzzle.
// Translation is set at construction and never changes.
type Cubie struct {
	translation mgl32.Vec3
	Orientation Orientation
}

// Translation returns the fixed offset of the slot from the puzzle centre.
func (c Cubie) Translation() mgl32.Vec3 {
	return c.translation
}

// Slots is the arena of all 27 cubies, addressed by SlotIndex.
type Slots [SlotCount]Cubie

// NewSlots builds the arena with identity orientations and translations
// of coordinate * spacing.
func NewSlots(spacing float32) Slots {
	var s Slots
	for i := range s {
		idx := SlotIndex(i)
		c := idx.Coordinate()
		s[i] = Cubie{
			translation: mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}.Mul(spacing),
			Orientation: Orientation{Origin: idx, Rotation: mgl32.Ident4()},
		}
	}
	return s
}

// Swap exchanges the orientations held by two slots.
// Translations stay where they are.
func (s *Slots) Swap(i, j SlotIndex) {
	s[i].Orientation, s[j].Orientation = s[j].Orientation, s[i].Orientation
}

// Orientations returns a copy of every slot's orientation.
func (s *Slots) Orientations() [SlotCount]Orientation {
	var out [SlotCount]Orientation
	for i := range s {
		out[i] = s[i].Orientation
	}
	return out
}
