package layout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
)

// Placer puts rooms on one section grid.
type Placer struct {
	grid    *Grid
	policy  Policy
	hint    *hint.Hint
	section int
	logger  *zap.Logger
}

// NewPlacer returns a Placer working on a fresh grid for section.
//
// Precondition: logger must be non-nil.
func NewPlacer(section int, h *hint.Hint, logger *zap.Logger) *Placer {
	return &Placer{
		grid:    NewGrid(),
		policy:  NewPolicy(h),
		hint:    h,
		section: section,
		logger:  logger,
	}
}

// Grid returns the grid being built.
func (p *Placer) Grid() *Grid { return p.grid }

// Insert places room to next to pos, the cell of room from, following the
// exit direction dir. A hint fix for (from, to) overrides dir. Candidate
// cells are tried in policy order and the first free one wins, growing the
// grid when it lies outside. The None direction places to on pos itself.
// A room that is already placed is left where it is.
//
// Once to is placed, the section's after-placement moves for it are applied.
//
// Postcondition: Returns the final cell of to, or an error wrapping
// ErrUnknownDirection or ErrNoFreeCell with the grid unchanged.
func (p *Placer) Insert(from, to area.RoomID, pos Pos, dir area.Direction) (Pos, error) {
	if at, ok := p.grid.Find(to); ok {
		return at, nil
	}
	dir = p.policy.Direction(from, to, dir)
	resolved, err := p.policy.Resolve(p.grid, pos, dir)
	if err != nil {
		return Pos{}, fmt.Errorf("placing room %d from %d: %w", to, from, err)
	}
	for _, c := range p.policy.Candidates(pos, resolved) {
		if !p.grid.Free(c) {
			continue
		}
		p.grid.Set(c, to)
		applyMoves(p.grid, p.hint.AfterPlacement(p.section, to), p.logger)
		at, _ := p.grid.Find(to)
		return at, nil
	}
	return Pos{}, fmt.Errorf("placing room %d from %d going %q: %w", to, from, resolved, ErrNoFreeCell)
}
