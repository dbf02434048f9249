// Package layout places the rooms of an area on an integer grid consistent
// with their compass exits, then converts cells to pixel coordinates and
// derives the links to draw.
package layout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
)

// Options controls pixel conversion and search bounds.
type Options struct {
	CellWidth  int
	CellHeight int
	MarginX    int
	MarginY    int
	// MaxIterations caps the cells walked when connecting a section.
	MaxIterations int
}

// DefaultOptions returns the standard cell size and margins.
func DefaultOptions() Options {
	return Options{
		CellWidth:     150,
		CellHeight:    75,
		MarginX:       20,
		MarginY:       20,
		MaxIterations: 100,
	}
}

// Validate checks that sizes are positive and margins are not negative.
func (o Options) Validate() error {
	if o.CellWidth <= 0 || o.CellHeight <= 0 {
		return fmt.Errorf("layout: cell size must be positive, got %dx%d", o.CellWidth, o.CellHeight)
	}
	if o.MarginX < 0 || o.MarginY < 0 {
		return fmt.Errorf("layout: margins must not be negative, got %d,%d", o.MarginX, o.MarginY)
	}
	if o.MaxIterations <= 0 {
		return fmt.Errorf("layout: max iterations must be positive, got %d", o.MaxIterations)
	}
	return nil
}

// Placement is the final position of one room.
type Placement struct {
	ID      area.RoomID `json:"id" yaml:"id"`
	Name    string      `json:"name" yaml:"name"`
	Section int         `json:"section" yaml:"section"`
	Cell    Pos         `json:"cell" yaml:"cell"`
	X       int         `json:"x" yaml:"x"`
	Y       int         `json:"y" yaml:"y"`
	// Hidden rooms are not on the global grid; Cell, X and Y are zero.
	Hidden bool `json:"hidden" yaml:"hidden"`
}

// SectionSummary describes one section of the result.
type SectionSummary struct {
	ID     int           `json:"id" yaml:"id"`
	Rooms  []area.RoomID `json:"rooms" yaml:"rooms"`
	Placed bool          `json:"placed" yaml:"placed"`
	// Width and Height are the size of the section grid in cells.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Result is the layout document of one area.
type Result struct {
	RunID    string           `json:"run_id" yaml:"run_id"`
	Area     string           `json:"area" yaml:"area"`
	File     string           `json:"file" yaml:"file"`
	Rooms    []Placement      `json:"rooms" yaml:"rooms"`
	Links    []Link           `json:"links" yaml:"links"`
	Sections []SectionSummary `json:"sections" yaml:"sections"`
	Unplaced []int            `json:"unplaced,omitempty" yaml:"unplaced,omitempty"`
	Columns  int              `json:"columns" yaml:"columns"`
	Rows     int              `json:"rows" yaml:"rows"`
	Width    int              `json:"width" yaml:"width"`
	Height   int              `json:"height" yaml:"height"`

	grid *Grid
}

// Complete reports whether every section made it onto the global grid.
func (r *Result) Complete() bool { return len(r.Unplaced) == 0 }

// Grid returns the global grid.
func (r *Result) Grid() *Grid { return r.grid }

// Placement returns the placement of room id.
func (r *Result) Placement(id area.RoomID) (Placement, bool) {
	for _, p := range r.Rooms {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Text renders the result for a terminal: a summary line, the grid, and the
// hidden rooms if any.
func (r *Result) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %d rooms, %d sections, %dx%d cells\n",
		r.Area, r.File, len(r.Rooms), len(r.Sections), r.Columns, r.Rows)
	if r.grid != nil {
		b.WriteString(r.grid.String())
	}
	var hidden []string
	for _, p := range r.Rooms {
		if p.Hidden {
			hidden = append(hidden, fmt.Sprintf("%d", p.ID))
		}
	}
	if len(hidden) > 0 {
		fmt.Fprintf(&b, "hidden: %s\n", strings.Join(hidden, " "))
	}
	return b.String()
}

// Build lays out a. Rooms listed in the hint's ignore set are dropped first.
// Placement problems are logged and degrade the result (hidden rooms,
// unplaced sections) instead of failing it.
//
// Precondition: logger must be non-nil; h may be nil.
// Postcondition: Returns a non-nil Result, or a non-nil error if the area,
// the options or the room graph are invalid.
func Build(a *area.Area, h *hint.Hint, opts Options, logger *zap.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID), zap.String("area", a.Name))

	var ignore []area.RoomID
	if h != nil {
		ignore = h.Ignore
	}
	work := a.Without(ignore)
	if len(work.Rooms) == 0 {
		return nil, fmt.Errorf("layout: area %q: every room is ignored", a.Name)
	}

	g, err := work.Graph()
	if err != nil {
		return nil, fmt.Errorf("layout: area %q: %w", a.Name, err)
	}
	sections, err := Partition(work, g, h, logger)
	if err != nil {
		return nil, fmt.Errorf("layout: area %q: %w", a.Name, err)
	}
	for _, s := range sections {
		s.Build(h, logger)
	}
	grid, unplaced := Compose(sections, h, opts.MaxIterations, logger)

	sectionOf := make(map[area.RoomID]int, len(work.Rooms))
	res := &Result{
		RunID:    runID,
		Area:     a.Name,
		File:     a.File,
		Unplaced: unplaced,
		Columns:  grid.Width(),
		Rows:     grid.Height(),
		Width:    grid.Width() * opts.CellWidth,
		Height:   grid.Height() * opts.CellHeight,
		grid:     grid,
	}
	isUnplaced := make(map[int]bool, len(unplaced))
	for _, id := range unplaced {
		isUnplaced[id] = true
	}
	for _, s := range sections {
		for _, id := range s.RoomIDs() {
			sectionOf[id] = s.ID
		}
		res.Sections = append(res.Sections, SectionSummary{
			ID:     s.ID,
			Rooms:  s.RoomIDs(),
			Placed: !isUnplaced[s.ID],
			Width:  s.Grid.Width(),
			Height: s.Grid.Height(),
		})
	}

	cells := grid.Positions()
	for _, r := range work.Rooms {
		p := Placement{ID: r.ID, Name: r.Name, Section: sectionOf[r.ID]}
		if cell, ok := cells[r.ID]; ok {
			p.Cell = cell
			p.X = cell.Col*opts.CellWidth + opts.MarginX
			p.Y = cell.Row*opts.CellHeight + opts.MarginY
		} else {
			p.Hidden = true
		}
		res.Rooms = append(res.Rooms, p)
	}
	res.Links = Links(work, g, grid.Has, sectionOf)

	logger.Info("layout built",
		zap.Int("rooms", len(res.Rooms)),
		zap.Int("sections", len(sections)),
		zap.Int("links", len(res.Links)),
		zap.Ints("unplaced", unplaced),
	)
	return res, nil
}
