// Package cubeanim animates a 3x3x3 twisty puzzle.
//
// The puzzle is 27 fixed slots. Each slot holds an orientation; a face turn
// permutes the orientations of the face's 9 slots and rotates each of them by
// 90 degrees. Slots themselves never move, so a drawn cubie appears to travel
// between grid positions only because orientation values are exchanged.
//
// # Quick Start
//
// Drive a Puzzle from one loop: feed it input, advance it once per frame and
// draw the snapshot.
//
//	p := cubeanim.New()
//
//	p.IssueFaceRotation(cubeanim.FaceFront)
//	p.ToggleDirection() // ignored while the front face is turning
//
//	for p.Rotating() {
//	    p.Advance(16 * time.Millisecond)
//	    for _, st := range p.Snapshot() {
//	        draw(st.Slot, st.Transform)
//	    }
//	}
//
//	fmt.Println(p.Net())
//	fmt.Println("Solved:", p.IsSolved())
//
// # Faces and directions
//
// Faces are slices of the grid: Front z=-1, Back z=+1, Right x=-1, Left x=+1,
// Down y=-1, Up y=+1. A single process-wide Direction (Clockwise or
// CounterClockwise) applies to every face command until toggled.
//
// # Concurrency
//
// A Puzzle has no locks. Commands and Advance must come from one goroutine;
// see internal/driver for a channel-fed loop that owns a Puzzle.
package cubeanim
