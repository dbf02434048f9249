package layout

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/mudmap/internal/area"
)

// Link is a connection to draw between two visible rooms.
type Link struct {
	From area.RoomID `json:"from" yaml:"from"`
	To   area.RoomID `json:"to" yaml:"to"`
	// Bidirectional is set when To also has an exit back to From.
	Bidirectional bool `json:"bidirectional" yaml:"bidirectional"`
	// Crossing is set when the rooms lie in different sections.
	Crossing bool `json:"crossing" yaml:"crossing"`
}

type roomPair struct{ a, b area.RoomID }

func pairOf(x, y area.RoomID) roomPair {
	if x > y {
		x, y = y, x
	}
	return roomPair{x, y}
}

// Links lists the connections between visible rooms of a, walking rooms in
// area order and each room's compass exits before its extra exits. A pair of
// rooms yields one link however many exits join them.
//
// Precondition: g must be a.Graph().
func Links(a *area.Area, g area.Graph, visible func(area.RoomID) bool, sectionOf map[area.RoomID]int) []Link {
	seen := mapset.New[roomPair]()
	var links []Link
	for _, r := range a.Rooms {
		if !visible(r.ID) {
			continue
		}
		for _, e := range r.AllExits() {
			if e.Target == r.ID || !visible(e.Target) {
				continue
			}
			pair := pairOf(r.ID, e.Target)
			if seen.Has(pair) {
				continue
			}
			seen.Put(pair)
			links = append(links, Link{
				From:          r.ID,
				To:            e.Target,
				Bidirectional: area.HasEdge(g, e.Target, r.ID),
				Crossing:      sectionOf[r.ID] != sectionOf[e.Target],
			})
		}
	}
	return links
}
