// Package area provides the map source model: areas, rooms, exits, and direction tokens.
package area

import (
	"fmt"
	"strings"
)

// RoomID identifies a room within an area. IDs come from the source data and
// are stable across layout passes.
type RoomID int

// Direction is an exit direction token as it appears in the source data.
type Direction string

// Recognised direction tokens.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
	// Any lets the placer pick any free neighbouring cell.
	Any Direction = "*"
	// None places a room directly on the given cell.
	None Direction = ""
)

// IsNorthward reports whether d places its target above the source cell.
func (d Direction) IsNorthward() bool { return d == North || d == Up }

// IsSouthward reports whether d places its target below the source cell.
func (d Direction) IsSouthward() bool { return d == South || d == Down }

// IsEast reports whether d is east.
func (d Direction) IsEast() bool { return d == East }

// IsWest reports whether d is west.
func (d Direction) IsWest() bool { return d == West }

// IsLadder reports whether d is a ladder of any kind ("ladder", "rope ladder", ...).
func (d Direction) IsLadder() bool { return strings.Contains(string(d), "ladder") }

// IsAny reports whether d is the wildcard direction.
func (d Direction) IsAny() bool { return d == Any }

// IsVertical reports whether d is up or down. Vertical exits are kept apart
// from the compass exits of a room.
func (d Direction) IsVertical() bool { return d == Up || d == Down }

// Known reports whether the layout engine understands d.
func (d Direction) Known() bool {
	return d == None || d.IsNorthward() || d.IsSouthward() || d.IsEast() || d.IsWest() || d.IsLadder() || d.IsAny()
}

// Opposite returns the reverse of a compass or vertical direction. Ladders and
// the wildcard are their own opposite; unknown tokens yield None.
func (d Direction) Opposite() Direction {
	switch {
	case d == North:
		return South
	case d == South:
		return North
	case d == East:
		return West
	case d == West:
		return East
	case d == Up:
		return Down
	case d == Down:
		return Up
	case d.IsLadder(), d.IsAny():
		return d
	default:
		return None
	}
}

// Exit is a directed connection from a room to a target room.
type Exit struct {
	// Direction is the raw direction token.
	Direction Direction
	// Target is the destination room. It may lie outside the area.
	Target RoomID
	// Key is the key object vnum guarding the exit, if any.
	Key string
}

// Room is a location in an area.
type Room struct {
	ID RoomID
	// Name is the display name with colour markup removed.
	Name   string
	Sector string
	// Exits holds compass exits in source order.
	Exits []Exit
	// ExtraExits holds up/down, ladder and other non-compass exits, at most
	// one per distinct target.
	ExtraExits []Exit
}

// AddExtraExits appends exits to ExtraExits, keeping only the first exit for
// each distinct target.
//
// Postcondition: no two entries of ExtraExits share a Target.
func (r *Room) AddExtraExits(exits ...Exit) {
	seen := make(map[RoomID]bool, len(r.ExtraExits)+len(exits))
	all := append(append([]Exit(nil), r.ExtraExits...), exits...)
	kept := make([]Exit, 0, len(all))
	for _, e := range all {
		if seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		kept = append(kept, e)
	}
	r.ExtraExits = kept
}

// AllExits returns the compass exits followed by the extra exits.
func (r *Room) AllExits() []Exit {
	all := make([]Exit, 0, len(r.Exits)+len(r.ExtraExits))
	all = append(all, r.Exits...)
	return append(all, r.ExtraExits...)
}

// HasExitTo reports whether any exit of r leads to id.
func (r *Room) HasExitTo(id RoomID) bool {
	for _, e := range r.AllExits() {
		if e.Target == id {
			return true
		}
	}
	return false
}

// Area is one parsed area file.
type Area struct {
	// Name is the display name of the area.
	Name string
	// File is the source file the area was read from. Hints are keyed by it.
	File string
	// Rooms lists the rooms in source order.
	Rooms []*Room
}

// Room returns the room with the given id.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (a *Area) Room(id RoomID) (*Room, bool) {
	for _, r := range a.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Index returns a lookup table from room id to room.
func (a *Area) Index() map[RoomID]*Room {
	idx := make(map[RoomID]*Room, len(a.Rooms))
	for _, r := range a.Rooms {
		idx[r.ID] = r
	}
	return idx
}

// Without returns a shallow copy of the area with the given rooms removed.
// Exits pointing at removed rooms are kept; layout ignores targets it cannot find.
func (a *Area) Without(ids []RoomID) *Area {
	drop := make(map[RoomID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := &Area{Name: a.Name, File: a.File, Rooms: make([]*Room, 0, len(a.Rooms))}
	for _, r := range a.Rooms {
		if !drop[r.ID] {
			out.Rooms = append(out.Rooms, r)
		}
	}
	return out
}

// Validate checks area invariants.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (a *Area) Validate() error {
	if len(a.Rooms) == 0 {
		return fmt.Errorf("area %q: must contain at least one room", a.Name)
	}
	seen := make(map[RoomID]bool, len(a.Rooms))
	for _, r := range a.Rooms {
		if r == nil {
			return fmt.Errorf("area %q: nil room", a.Name)
		}
		if r.ID < 0 {
			return fmt.Errorf("area %q: room id %d must not be negative", a.Name, r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("area %q: duplicate room id %d", a.Name, r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}
