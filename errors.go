package cubeanim

import "errors"

// Sentinel errors for the cubeanim package.
// The puzzle itself never returns these; they come from the parse helpers
// used by input layers before a command reaches the controller.
var (
	ErrUnknownFace      = errors.New("cubeanim: unknown face")
	ErrUnknownDirection = errors.New("cubeanim: unknown rotation direction")
	ErrUnknownViewHint  = errors.New("cubeanim: unknown view rotation hint")
)
