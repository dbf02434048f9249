package layout

import "errors"

// Placement outcomes. Layout logs these and carries on; they never abort a
// layout pass.
var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrNoFreeCell       = errors.New("no free cell")
	ErrUnknownRoom      = errors.New("unknown room")
	ErrNotPlaced        = errors.New("room not placed")
	ErrCellOccupied     = errors.New("cell occupied")
	ErrCellEmpty        = errors.New("cell empty")
	ErrBadDirective     = errors.New("malformed move directive")
)
