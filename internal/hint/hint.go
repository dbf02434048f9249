// Package hint models the per-area override table that steers automatic
// layout: ignored rooms, forced directions, section anchors and post-layout
// room moves.
package hint

import (
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mudmap/internal/area"
)

// DirectionFix overrides the direction used to place To next to From.
type DirectionFix struct {
	From area.RoomID    `yaml:"from"`
	To   area.RoomID    `yaml:"to"`
	Dir  area.Direction `yaml:"dir"`
}

// Cell is an absolute grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Target is where a move sends a room: a string of relative steps such as
// "uul", or an absolute cell written as [row, col]. A target that is neither
// is kept with Invalid set so the move can be reported when applied.
type Target struct {
	Steps   string
	At      *Cell
	Invalid string
}

// UnmarshalYAML accepts a scalar step string or a two-element integer
// sequence. Any other shape is recorded in Invalid instead of failing the load.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Steps = value.Value
		return nil
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err == nil && len(pair) == 2 {
			t.At = &Cell{Row: pair[0], Col: pair[1]}
			return nil
		}
	}
	t.Invalid = fmt.Sprintf("line %d: expected step string or [row, col]", value.Line)
	return nil
}

// MarshalYAML writes the target back in the form it was read.
func (t Target) MarshalYAML() (any, error) {
	if t.At != nil {
		return []int{t.At.Row, t.At.Col}, nil
	}
	return t.Steps, nil
}

// String renders the target for log output.
func (t Target) String() string {
	switch {
	case t.Invalid != "":
		return "invalid(" + t.Invalid + ")"
	case t.At != nil:
		return fmt.Sprintf("[%d,%d]", t.At.Row, t.At.Col)
	default:
		return t.Steps
	}
}

// Move relocates a room after it has been placed.
type Move struct {
	Room area.RoomID `yaml:"room"`
	To   Target      `yaml:"to"`
}

// Anchor pins a section by placing one of its rooms on an absolute cell.
type Anchor struct {
	Room area.RoomID `yaml:"room"`
	To   Target      `yaml:"to"`
}

// Hint is the override set for one area. The zero value means "no overrides".
type Hint struct {
	Ignore                         []area.RoomID  `yaml:"ignore,omitempty"`
	FixDirection                   []DirectionFix `yaml:"fix_direction,omitempty"`
	MoveSectionRooms               map[int][]Move `yaml:"move_section_rooms,omitempty"`
	MoveSectionRoomsAfterPlacement map[int][]Move `yaml:"move_section_rooms_after_placement,omitempty"`
	MovePlacedSectionRooms         map[int][]Move `yaml:"move_placed_section_rooms,omitempty"`
	PlaceSectionAt                 map[int]Anchor `yaml:"place_section_at,omitempty"`
	MoveMapRooms                   []Move         `yaml:"move_map_rooms,omitempty"`
	CentralSection                 int            `yaml:"central_section,omitempty"`
	StartRoom                      *area.RoomID   `yaml:"start_room,omitempty"`
}

// Fix returns the forced direction for placing to next to from. Only an exact
// (from, to) match counts; the reverse pair is a different fix.
func (h *Hint) Fix(from, to area.RoomID) (area.Direction, bool) {
	if h == nil {
		return area.None, false
	}
	for _, f := range h.FixDirection {
		if f.From == from && f.To == to {
			return f.Dir, true
		}
	}
	return area.None, false
}

// Ignored reports whether id is excluded from layout.
func (h *Hint) Ignored(id area.RoomID) bool {
	if h == nil {
		return false
	}
	for _, ig := range h.Ignore {
		if ig == id {
			return true
		}
	}
	return false
}

// AfterPlacement returns the moves to apply in section as soon as room has
// been placed.
func (h *Hint) AfterPlacement(section int, room area.RoomID) []Move {
	if h == nil {
		return nil
	}
	var out []Move
	for _, m := range h.MoveSectionRoomsAfterPlacement[section] {
		if m.Room == room {
			out = append(out, m)
		}
	}
	return out
}

// Anchor returns the absolute anchor for section, if any.
func (h *Hint) Anchor(section int) (Anchor, bool) {
	if h == nil {
		return Anchor{}, false
	}
	a, ok := h.PlaceSectionAt[section]
	return a, ok
}

// Table maps area file names to their hints.
type Table map[string]*Hint

// Lookup returns the hint for file: the exact key first, then any key whose
// base name equals the base name of file. Unknown files get an empty hint.
//
// Postcondition: Returns a non-nil Hint.
func (t Table) Lookup(file string) *Hint {
	if h, ok := t[file]; ok && h != nil {
		return h
	}
	base := filepath.Base(file)
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if filepath.Base(k) == base && t[k] != nil {
			return t[k]
		}
	}
	return &Hint{}
}

// Merge copies every entry of other into t, replacing existing keys.
func (t Table) Merge(other Table) {
	for k, v := range other {
		t[k] = v
	}
}
