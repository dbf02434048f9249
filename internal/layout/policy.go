package layout

import (
	"fmt"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
)

// Policy decides where a room goes relative to its neighbour: it applies
// hint direction fixes, resolves ladders and orders candidate cells.
type Policy struct {
	hint *hint.Hint
}

// NewPolicy returns a Policy backed by h. A nil hint means no overrides.
func NewPolicy(h *hint.Hint) Policy {
	return Policy{hint: h}
}

// Direction returns the direction to use for placing to next to from. A
// direction fix for the exact (from, to) pair overrides dir. Failing that, a
// fix for (to, from) applies reversed, so a fix holds whichever of its two
// rooms is placed first.
func (p Policy) Direction(from, to area.RoomID, dir area.Direction) area.Direction {
	if fixed, ok := p.hint.Fix(from, to); ok {
		return fixed
	}
	if fixed, ok := p.hint.Fix(to, from); ok {
		if opp := fixed.Opposite(); opp != area.None {
			return opp
		}
	}
	return dir
}

// Resolve turns dir into a concrete direction for a room placed next to pos
// in g. A ladder goes up unless the cell above pos is taken, then down.
//
// Postcondition: Returns a known direction that is not a ladder, or an error
// wrapping ErrUnknownDirection.
func (p Policy) Resolve(g *Grid, pos Pos, dir area.Direction) (area.Direction, error) {
	if dir.IsLadder() {
		if g.Free(pos.Up()) {
			return area.Up, nil
		}
		return area.Down, nil
	}
	if !dir.Known() {
		return area.None, fmt.Errorf("direction %q: %w", dir, ErrUnknownDirection)
	}
	return dir, nil
}

// Candidates lists the cells to try, in order, for a room placed in resolved
// direction dir from pos. The first cell is the exact neighbour; the others
// are the fudge cells on either side of it.
func (p Policy) Candidates(pos Pos, dir area.Direction) []Pos {
	switch {
	case dir.IsNorthward():
		at := pos.Up()
		return []Pos{at, at.Left(), at.Right()}
	case dir.IsSouthward():
		at := pos.Down()
		return []Pos{at, at.Left(), at.Right()}
	case dir.IsEast():
		at := pos.Right()
		return []Pos{at, at.Up(), at.Down()}
	case dir.IsWest():
		at := pos.Left()
		return []Pos{at, at.Up(), at.Down()}
	case dir.IsAny():
		return []Pos{pos.Up(), pos.Down(), pos.Left(), pos.Right()}
	default:
		return []Pos{pos}
	}
}

// Step returns the unit offset of a resolved direction, or ok=false for
// directions that do not move (wildcard and none).
func (p Policy) Step(dir area.Direction) (dRow, dCol int, ok bool) {
	switch {
	case dir.IsNorthward():
		return -1, 0, true
	case dir.IsSouthward():
		return 1, 0, true
	case dir.IsEast():
		return 0, 1, true
	case dir.IsWest():
		return 0, -1, true
	default:
		return 0, 0, false
	}
}
