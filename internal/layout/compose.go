package layout

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
)

// composer merges built section grids into one global grid, room by room.
type composer struct {
	sections []*Section
	grid     *Grid
	policy   Policy
	hint     *hint.Hint
	maxSteps int
	logger   *zap.Logger

	placed mapset.Set[int]
	failed mapset.Set[int]
	order  []int
}

// Compose assembles the global grid. The central section is copied in first;
// then, repeatedly, the first unplaced section adjacent to a placed one by an
// exit in either direction (or failing that, the first unplaced section) is
// connected through one of the exits between them. Connecting walks from the placed room in the exit's
// direction, one cell at a time and at most maxSteps cells, until the whole
// section fits on empty cells with the connecting room on the walked cell. A
// section that cannot be connected falls back to its place-section-at hint;
// without one it is set aside and retried after the next section is placed.
// Sections still set aside when nothing more can be placed are unplaced.
//
// Precondition: every section has been built; sections is non-empty.
// Postcondition: Returns the global grid and the ids of sections left out, in
// ascending order.
func Compose(sections []*Section, h *hint.Hint, maxSteps int, logger *zap.Logger) (*Grid, []int) {
	c := &composer{
		sections: sections,
		policy:   NewPolicy(h),
		hint:     h,
		maxSteps: maxSteps,
		logger:   logger,
		placed:   mapset.New[int](),
		failed:   mapset.New[int](),
	}

	central := 0
	if h != nil {
		central = h.CentralSection
	}
	if central < 0 || central >= len(sections) {
		logger.Warn("central section out of range, using section 0",
			zap.Int("section", central),
			zap.Int("sections", len(sections)),
		)
		central = 0
	}
	c.grid = sections[central].Grid.Clone()
	c.placed.Put(central)
	c.order = append(c.order, central)

	// Each placement clears failed, so at most len(sections) attempts
	// separate two placements.
	for i := 0; i < len(sections)*len(sections); i++ {
		next, ok := c.next()
		if !ok {
			break
		}
		sec := sections[next]
		if c.connect(sec) || c.anchor(sec) {
			c.failed = mapset.New[int]()
			continue
		}
		c.failed.Put(next)
		logger.Debug("section deferred", zap.Int("section", next))
	}

	if h != nil {
		applyMoves(c.grid, h.MoveMapRooms, logger)
	}

	var unplaced []int
	for _, s := range sections {
		if !c.placed.Has(s.ID) {
			unplaced = append(unplaced, s.ID)
			logger.Error("section not placed",
				zap.Int("section", s.ID),
				zap.Ints("rooms", roomInts(s.RoomIDs())),
			)
		}
	}
	return c.grid, unplaced
}

func (c *composer) pending(id int) bool {
	return !c.placed.Has(id) && !c.failed.Has(id)
}

// next picks the section to place: one reached by an exit out of a placed
// section, then one with an exit into a placed section, then any pending one.
func (c *composer) next() (int, bool) {
	for _, sid := range c.order {
		for _, ax := range c.sections[sid].AdjExits {
			if c.pending(ax.Section) {
				return ax.Section, true
			}
		}
	}
	for _, s := range c.sections {
		if !c.pending(s.ID) {
			continue
		}
		for _, ax := range s.AdjExits {
			if c.placed.Has(ax.Section) {
				return s.ID, true
			}
		}
	}
	for _, s := range c.sections {
		if c.pending(s.ID) {
			return s.ID, true
		}
	}
	return 0, false
}

// connect tries every exit between sec and the placed sections: exits out
// of placed sections first, in placement order, then exits out of sec with
// their direction reversed.
func (c *composer) connect(sec *Section) bool {
	for _, sid := range c.order {
		for _, ax := range c.sections[sid].AdjExits {
			if ax.Section != sec.ID {
				continue
			}
			dir := c.policy.Direction(ax.Room, ax.Exit.Target, ax.Exit.Direction)
			if c.walk(sec, ax.Room, ax.Exit.Target, dir) {
				return true
			}
		}
	}
	for _, ax := range sec.AdjExits {
		if !c.placed.Has(ax.Section) {
			continue
		}
		dir := c.policy.Direction(ax.Exit.Target, ax.Room, ax.Exit.Direction.Opposite())
		if c.walk(sec, ax.Exit.Target, ax.Room, dir) {
			return true
		}
	}
	return false
}

// walk steps away from the placed room from in direction dir looking for a
// cell where sec fits with its room to on that cell.
func (c *composer) walk(sec *Section, from, to area.RoomID, dir area.Direction) bool {
	at, ok := c.grid.Find(from)
	if !ok {
		return false
	}
	resolved, err := c.policy.Resolve(c.grid, at, dir)
	if err != nil {
		c.logger.Warn("section exit skipped",
			zap.Int("section", sec.ID),
			zap.Int("from", int(from)),
			zap.Int("to", int(to)),
			zap.Error(err),
		)
		return false
	}
	dRow, dCol, ok := c.policy.Step(resolved)
	if !ok {
		return false
	}
	for i := 0; i < c.maxSteps; i++ {
		at = at.Add(dRow, dCol)
		if c.tryPlace(sec, at, to) {
			return true
		}
	}
	return false
}

func (c *composer) anchor(sec *Section) bool {
	a, ok := c.hint.Anchor(sec.ID)
	if !ok {
		return false
	}
	if a.To.At == nil {
		c.logger.Warn("place-section-at needs an absolute cell",
			zap.Int("section", sec.ID),
			zap.Stringer("to", a.To),
		)
		return false
	}
	return c.tryPlace(sec, Pos{Row: a.To.At.Row, Col: a.To.At.Col}, a.Room)
}

// tryPlace splices sec into the global grid so that its room to lands on at.
// Every cell of sec must map onto an empty global cell; cells outside the
// global grid count as empty and grow it.
func (c *composer) tryPlace(sec *Section, at Pos, to area.RoomID) bool {
	if !c.grid.Free(at) {
		return false
	}
	local, ok := sec.Grid.Find(to)
	if !ok {
		return false
	}
	dRow, dCol := at.Row-local.Row, at.Col-local.Col

	fits := true
	sec.Grid.Each(func(p Pos, _ area.RoomID) {
		if fits && !c.grid.Free(p.Add(dRow, dCol)) {
			fits = false
		}
	})
	if !fits {
		return false
	}

	var shift Shift
	sec.Grid.Each(func(p Pos, id area.RoomID) {
		s := c.grid.Set(p.Add(dRow+shift.Rows, dCol+shift.Cols), id)
		shift = shift.Add(s)
	})
	c.placed.Put(sec.ID)
	c.order = append(c.order, sec.ID)
	c.logger.Debug("section placed",
		zap.Int("section", sec.ID),
		zap.Int("room", int(to)),
		zap.Stringer("cell", at),
	)

	if c.hint != nil {
		applyMoves(c.grid, c.hint.MovePlacedSectionRooms[sec.ID], c.logger)
	}
	return true
}
