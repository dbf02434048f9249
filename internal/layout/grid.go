package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/mudmap/internal/area"
)

// Empty marks an unoccupied grid cell.
const Empty area.RoomID = -1

// Pos is a grid cell address. Row grows downwards, Col grows to the right.
// Positions may lie outside a grid; Grid.Set grows the grid to reach them.
type Pos struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (p Pos) Up() Pos    { return Pos{p.Row - 1, p.Col} }
func (p Pos) Down() Pos  { return Pos{p.Row + 1, p.Col} }
func (p Pos) Left() Pos  { return Pos{p.Row, p.Col - 1} }
func (p Pos) Right() Pos { return Pos{p.Row, p.Col + 1} }

// Add offsets p by dRow rows and dCol columns.
func (p Pos) Add(dRow, dCol int) Pos { return Pos{p.Row + dRow, p.Col + dCol} }

// Shifted applies a growth shift to a position computed before the growth.
func (p Pos) Shifted(s Shift) Pos { return Pos{p.Row + s.Rows, p.Col + s.Cols} }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Shift is the number of rows and columns inserted in front of a grid by a
// growing operation. Every position computed before the operation must be
// shifted by it.
type Shift struct {
	Rows int
	Cols int
}

// Add combines two consecutive shifts.
func (s Shift) Add(o Shift) Shift { return Shift{s.Rows + o.Rows, s.Cols + o.Cols} }

// Grid is a sparse, growable 2D array of room ids. Every id occupies at most
// one cell.
type Grid struct {
	cells  [][]area.RoomID
	width  int
	placed mapset.Set[area.RoomID]
}

// NewGrid returns an empty 0x0 grid.
func NewGrid() *Grid {
	return &Grid{placed: mapset.New[area.RoomID]()}
}

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.cells) }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Len returns the number of placed rooms.
func (g *Grid) Len() int { return g.placed.Size() }

// Within reports whether p addresses a cell inside the grid.
func (g *Grid) Within(p Pos) bool {
	return p.Row >= 0 && p.Row < len(g.cells) && p.Col >= 0 && p.Col < g.width
}

// Get returns the id at p, or Empty when p is empty or out of bounds.
func (g *Grid) Get(p Pos) area.RoomID {
	if !g.Within(p) {
		return Empty
	}
	return g.cells[p.Row][p.Col]
}

// Free reports whether a room could be put at p without displacing another:
// p is out of bounds or empty.
func (g *Grid) Free(p Pos) bool { return g.Get(p) == Empty }

// Has reports whether id is placed.
func (g *Grid) Has(id area.RoomID) bool { return g.placed.Has(id) }

// Find returns the cell holding id.
//
// Postcondition: Returns (pos, true) if id is placed, or (Pos{}, false) otherwise.
func (g *Grid) Find(id area.RoomID) (Pos, bool) {
	if !g.placed.Has(id) {
		return Pos{}, false
	}
	for r, row := range g.cells {
		for c, v := range row {
			if v == id {
				return Pos{r, c}, true
			}
		}
	}
	return Pos{}, false
}

// Set puts id at p, growing the grid by the minimal number of rows and
// columns needed to reach p. If id was already placed elsewhere, its old cell
// is cleared. A different id occupying p is evicted.
//
// Precondition: id must not be Empty.
// Postcondition: Get(p.Shifted(shift)) == id.
func (g *Grid) Set(p Pos, id area.RoomID) Shift {
	shift := g.grow(p)
	p = p.Shifted(shift)
	if old, ok := g.Find(id); ok {
		g.cells[old.Row][old.Col] = Empty
	}
	if prev := g.cells[p.Row][p.Col]; prev != Empty {
		g.placed.Remove(prev)
	}
	g.cells[p.Row][p.Col] = id
	g.placed.Put(id)
	return shift
}

// Clear empties p. Out of bounds is a no-op.
func (g *Grid) Clear(p Pos) {
	if !g.Within(p) {
		return
	}
	if id := g.cells[p.Row][p.Col]; id != Empty {
		g.placed.Remove(id)
		g.cells[p.Row][p.Col] = Empty
	}
}

// Move relocates the room at from to to, growing the grid if to lies outside.
//
// Postcondition: on success the room sits at to.Shifted(shift) and from is
// empty; on error the grid is unchanged.
func (g *Grid) Move(from, to Pos) (Shift, error) {
	id := g.Get(from)
	if id == Empty {
		return Shift{}, fmt.Errorf("move %s -> %s: %w", from, to, ErrCellEmpty)
	}
	if from == to {
		return Shift{}, nil
	}
	if other := g.Get(to); other != Empty {
		return Shift{}, fmt.Errorf("move room %d %s -> %s: held by room %d: %w", id, from, to, other, ErrCellOccupied)
	}
	g.Clear(from)
	return g.Set(to, id), nil
}

// InsertRow inserts an empty row before row k. Rooms on rows >= k move down
// by one. k is clamped to [0, Height()].
func (g *Grid) InsertRow(k int) {
	k = clamp(k, 0, len(g.cells))
	row := g.emptyRow()
	g.cells = append(g.cells, nil)
	copy(g.cells[k+1:], g.cells[k:])
	g.cells[k] = row
}

// InsertCol inserts an empty column before column k. Rooms on columns >= k
// move right by one. k is clamped to [0, Width()].
func (g *Grid) InsertCol(k int) {
	k = clamp(k, 0, g.width)
	for r, row := range g.cells {
		row = append(row, Empty)
		copy(row[k+1:], row[k:])
		row[k] = Empty
		g.cells[r] = row
	}
	g.width++
}

// Each calls fn for every occupied cell in row-major order.
func (g *Grid) Each(fn func(p Pos, id area.RoomID)) {
	for r, row := range g.cells {
		for c, v := range row {
			if v != Empty {
				fn(Pos{r, c}, v)
			}
		}
	}
}

// Positions returns the cell of every placed room.
func (g *Grid) Positions() map[area.RoomID]Pos {
	out := make(map[area.RoomID]Pos, g.Len())
	g.Each(func(p Pos, id area.RoomID) { out[id] = p })
	return out
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		cells:  make([][]area.RoomID, len(g.cells)),
		width:  g.width,
		placed: mapset.New[area.RoomID](),
	}
	for r, row := range g.cells {
		out.cells[r] = append([]area.RoomID(nil), row...)
	}
	g.placed.Each(func(id area.RoomID) { out.placed.Put(id) })
	return out
}

// String renders the grid one row per line with right-aligned ids and "."
// for empty cells.
func (g *Grid) String() string {
	w := 1
	g.Each(func(_ Pos, id area.RoomID) {
		if n := len(strconv.Itoa(int(id))); n > w {
			w = n
		}
	})
	var b strings.Builder
	for _, row := range g.cells {
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if v != Empty {
				cell = strconv.Itoa(int(v))
			}
			b.WriteString(strings.Repeat(" ", w-len(cell)))
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) grow(p Pos) Shift {
	var shift Shift
	if p.Row < 0 {
		shift.Rows = -p.Row
		for i := 0; i < shift.Rows; i++ {
			g.InsertRow(0)
		}
	}
	for p.Row+shift.Rows >= len(g.cells) {
		g.cells = append(g.cells, g.emptyRow())
	}
	if p.Col < 0 {
		shift.Cols = -p.Col
		for i := 0; i < shift.Cols; i++ {
			g.InsertCol(0)
		}
	}
	for p.Col+shift.Cols >= g.width {
		g.InsertCol(g.width)
	}
	return shift
}

func (g *Grid) emptyRow() []area.RoomID {
	row := make([]area.RoomID, g.width)
	for i := range row {
		row[i] = Empty
	}
	return row
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
