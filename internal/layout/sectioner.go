package layout

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
)

// Partition splits the rooms of a into sections.
//
// Sections are the connected components of the compass exit graph with exit
// direction ignored, found breadth first from the hint start room (or the
// first room) and then from the first unassigned room until every room is
// assigned. A section of a single room is then merged into the smallest
// section it shares any exit with, ties going to the lower index. Survivors
// are numbered from 0 and their exits into sibling sections are recorded.
//
// Precondition: a must be valid; g must be a.Graph().
// Postcondition: every room of a belongs to exactly one returned section.
func Partition(a *area.Area, g area.Graph, h *hint.Hint, logger *zap.Logger) ([]*Section, error) {
	idx := a.Index()
	incoming := make(map[area.RoomID][]area.RoomID, len(a.Rooms))
	for _, r := range a.Rooms {
		for _, e := range r.Exits {
			if _, ok := idx[e.Target]; ok && e.Target != r.ID {
				incoming[e.Target] = append(incoming[e.Target], r.ID)
			}
		}
	}

	start := a.Rooms[0].ID
	if h != nil && h.StartRoom != nil {
		if _, ok := idx[*h.StartRoom]; ok {
			start = *h.StartRoom
		} else {
			logger.Warn("start room not in area, using first room",
				zap.Int("room", int(*h.StartRoom)),
				zap.Int("first", int(start)),
			)
		}
	}

	assigned := mapset.New[area.RoomID]()
	var groups [][]area.RoomID
	next := 0
	for assigned.Size() < len(a.Rooms) {
		if assigned.Has(start) {
			for assigned.Has(a.Rooms[next].ID) {
				next++
			}
			start = a.Rooms[next].ID
		}
		group := []area.RoomID{start}
		assigned.Put(start)
		for i := 0; i < len(group); i++ {
			cur := idx[group[i]]
			var nbrs []area.RoomID
			for _, e := range cur.Exits {
				nbrs = append(nbrs, e.Target)
			}
			nbrs = append(nbrs, incoming[cur.ID]...)
			for _, n := range nbrs {
				if _, ok := idx[n]; !ok || assigned.Has(n) {
					continue
				}
				assigned.Put(n)
				group = append(group, n)
			}
		}
		groups = append(groups, group)
	}

	groups, err := compact(groups, g)
	if err != nil {
		return nil, fmt.Errorf("compacting sections: %w", err)
	}

	sections := make([]*Section, len(groups))
	owner := make(map[area.RoomID]int, len(a.Rooms))
	for i, grp := range groups {
		rooms := make([]*area.Room, len(grp))
		for j, id := range grp {
			rooms[j] = idx[id]
			owner[id] = i
		}
		sections[i] = NewSection(i, rooms)
	}
	for _, s := range sections {
		for _, r := range s.Rooms {
			for _, e := range r.AllExits() {
				if sid, ok := owner[e.Target]; ok && sid != s.ID {
					s.AdjExits = append(s.AdjExits, AdjExit{Room: r.ID, Section: sid, Exit: e})
				}
			}
		}
	}

	logger.Debug("area partitioned", zap.Int("sections", len(sections)), zap.Int("rooms", len(a.Rooms)))
	return sections, nil
}

// compact merges single-room groups into their smallest neighbouring group.
// A merged group is dropped at once so later merges never target it.
func compact(groups [][]area.RoomID, g area.Graph) ([][]area.RoomID, error) {
	owner := make(map[area.RoomID]int)
	for i, grp := range groups {
		for _, id := range grp {
			owner[id] = i
		}
	}
	alive := make([]bool, len(groups))
	for i := range alive {
		alive[i] = true
	}

	for i := range groups {
		if len(groups[i]) != 1 {
			continue
		}
		id := groups[i][0]
		nbrs, err := area.Neighbours(g, id)
		if err != nil {
			return nil, err
		}
		best := -1
		for _, n := range nbrs {
			j, ok := owner[n]
			if !ok || j == i || !alive[j] {
				continue
			}
			if best < 0 || len(groups[j]) < len(groups[best]) || (len(groups[j]) == len(groups[best]) && j < best) {
				best = j
			}
		}
		if best < 0 {
			continue
		}
		groups[best] = append(groups[best], id)
		owner[id] = best
		alive[i] = false
	}

	out := make([][]area.RoomID, 0, len(groups))
	for i, grp := range groups {
		if alive[i] {
			out = append(out, grp)
		}
	}
	return out, nil
}
