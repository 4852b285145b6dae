package driver

import (
	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/notation"
)

// Frame is a JSON-friendly picture of the puzzle after one tick.
type Frame struct {
	Seq        uint64            `json:"seq"`
	Direction  string            `json:"direction"`
	Active     *ActiveFrame      `json:"active,omitempty"`
	View       ViewFrame         `json:"view"`
	Commits    int               `json:"commits"`
	Solved     bool              `json:"solved"`
	Net        map[string]string `json:"net"`
	History    string            `json:"history"`
	Transforms [][16]float32     `json:"transforms"`
}

// ActiveFrame describes the face rotation in flight.
type ActiveFrame struct {
	Face      string  `json:"face"`
	Direction string  `json:"direction"`
	Angle     float32 `json:"angle"`
	Progress  float32 `json:"progress"`
}

// ViewFrame is the whole-puzzle view rotation in radians.
type ViewFrame struct {
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// NewFrame captures the current state of p.
func NewFrame(seq uint64, p *cubeanim.Puzzle) Frame {
	f := Frame{
		Seq:       seq,
		Direction: p.Direction().String(),
		View:      ViewFrame{Yaw: p.View().Yaw, Pitch: p.View().Pitch},
		Commits:   p.Commits(),
		History:   notation.FormatSequence(notation.Compact(p.History())),
		Net:       make(map[string]string, len(cubeanim.Faces)),
	}

	if a, ok := p.Active(); ok {
		f.Active = &ActiveFrame{
			Face:      a.Face.String(),
			Direction: a.Direction.String(),
			Angle:     a.Angle,
			Progress:  a.Progress(),
		}
	}

	net := p.Net()
	f.Solved = net.IsSolved()
	for _, face := range cubeanim.Faces {
		stickers := make([]byte, 0, 9)
		for _, c := range net[face] {
			stickers = append(stickers, c.String()[0])
		}
		f.Net[face.String()] = string(stickers)
	}

	snap := p.Snapshot()
	f.Transforms = make([][16]float32, len(snap))
	for i, st := range snap {
		f.Transforms[i] = st.Transform
	}

	return f
}
