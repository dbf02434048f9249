package layout

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
)

// AdjExit is an exit from a section room into a sibling section.
type AdjExit struct {
	Room    area.RoomID
	Section int
	Exit    area.Exit
}

// Section is a connected group of rooms laid out on its own grid before the
// sections are merged.
type Section struct {
	ID    int
	Rooms []*area.Room
	// AdjExits lists exits into sibling sections in room order, then exit order.
	AdjExits []AdjExit
	// Grid is the section layout; nil until Build runs.
	Grid *Grid

	members mapset.Set[area.RoomID]
}

// NewSection returns a section holding rooms in the given order.
func NewSection(id int, rooms []*area.Room) *Section {
	s := &Section{ID: id, Rooms: rooms, members: mapset.New[area.RoomID]()}
	for _, r := range rooms {
		s.members.Put(r.ID)
	}
	return s
}

// Contains reports whether id belongs to the section.
func (s *Section) Contains(id area.RoomID) bool { return s.members.Has(id) }

// RoomIDs returns the member ids in section order.
func (s *Section) RoomIDs() []area.RoomID {
	ids := make([]area.RoomID, len(s.Rooms))
	for i, r := range s.Rooms {
		ids[i] = r.ID
	}
	return ids
}

var errNoEntrance = errors.New("no placed neighbour")

type buildStep struct {
	room  *area.Room
	extra bool
}

// Build lays the section out on a fresh grid.
//
// Rooms that are not targets of in-section extra exits go first, then those
// that are. An unplaced room is anchored on a free cell around its first
// placed neighbour: exit targets first, then rooms with an exit into it.
// The room's compass exits, and for the second group its extra exits too,
// then place their in-section targets. A room with no placed neighbour yet is
// retried once the rest of the section is down. The section's move hints run
// last.
//
// Postcondition: s.Grid is non-nil. Returns the ids of member rooms that
// could not be placed, in section order.
func (s *Section) Build(h *hint.Hint, logger *zap.Logger) []area.RoomID {
	logger = logger.With(zap.Int("section", s.ID))
	p := NewPlacer(s.ID, h, logger)
	s.Grid = p.Grid()

	extraTargets := mapset.New[area.RoomID]()
	for _, r := range s.Rooms {
		for _, e := range r.ExtraExits {
			if s.Contains(e.Target) {
				extraTargets.Put(e.Target)
			}
		}
	}
	order := make([]buildStep, 0, len(s.Rooms))
	for _, r := range s.Rooms {
		if !extraTargets.Has(r.ID) {
			order = append(order, buildStep{room: r})
		}
	}
	for _, r := range s.Rooms {
		if extraTargets.Has(r.ID) {
			order = append(order, buildStep{room: r, extra: true})
		}
	}

	var deferred []buildStep
	for _, st := range order {
		if errors.Is(s.place(p, st, logger), errNoEntrance) {
			deferred = append(deferred, st)
		}
	}
	for progress := true; progress && len(deferred) > 0; {
		progress = false
		var rest []buildStep
		for _, st := range deferred {
			if errors.Is(s.place(p, st, logger), errNoEntrance) {
				rest = append(rest, st)
				continue
			}
			progress = true
		}
		deferred = rest
	}
	for _, st := range deferred {
		at := Pos{Row: 0, Col: s.Grid.Width()}
		logger.Warn("room has no placed neighbour, placing it apart",
			zap.Int("room", int(st.room.ID)),
			zap.Stringer("cell", at),
		)
		if _, err := p.Insert(Empty, st.room.ID, at, area.None); err == nil {
			s.insertExits(p, st.room, st.extra, logger)
		}
	}

	if h != nil {
		applyMoves(s.Grid, h.MoveSectionRooms[s.ID], logger)
	}

	var unplaced []area.RoomID
	for _, r := range s.Rooms {
		if !s.Grid.Has(r.ID) {
			unplaced = append(unplaced, r.ID)
		}
	}
	if len(unplaced) > 0 {
		logger.Warn("rooms left unplaced", zap.Ints("rooms", roomInts(unplaced)))
	}
	logger.Debug("section built",
		zap.Int("rooms", len(s.Rooms)),
		zap.Int("width", s.Grid.Width()),
		zap.Int("height", s.Grid.Height()),
	)
	return unplaced
}

// place anchors st.room if needed and then places its exit targets. It
// returns errNoEntrance when the room has nothing placed to attach to.
func (s *Section) place(p *Placer, st buildStep, logger *zap.Logger) error {
	if !s.Grid.Has(st.room.ID) {
		if err := s.anchor(p, st.room); err != nil {
			if !errors.Is(err, errNoEntrance) {
				logger.Warn("room not placed", zap.Int("room", int(st.room.ID)), zap.Error(err))
			}
			return err
		}
	}
	s.insertExits(p, st.room, st.extra, logger)
	return nil
}

func (s *Section) anchor(p *Placer, r *area.Room) error {
	if s.Grid.Len() == 0 {
		_, err := p.Insert(Empty, r.ID, Pos{}, area.None)
		return err
	}
	var entrances []area.RoomID
	for _, other := range s.Rooms {
		if s.Grid.Has(other.ID) && r.HasExitTo(other.ID) {
			entrances = append(entrances, other.ID)
		}
	}
	for _, other := range s.Rooms {
		if s.Grid.Has(other.ID) && !r.HasExitTo(other.ID) && other.HasExitTo(r.ID) {
			entrances = append(entrances, other.ID)
		}
	}
	if len(entrances) == 0 {
		return errNoEntrance
	}
	var err error
	for _, e := range entrances {
		at, _ := s.Grid.Find(e)
		if _, err = p.Insert(e, r.ID, at, area.Any); err == nil {
			return nil
		}
	}
	return err
}

func (s *Section) insertExits(p *Placer, r *area.Room, extra bool, logger *zap.Logger) {
	exits := r.Exits
	if extra {
		exits = r.AllExits()
	}
	for _, e := range exits {
		if !s.Contains(e.Target) || s.Grid.Has(e.Target) {
			continue
		}
		at, ok := s.Grid.Find(r.ID)
		if !ok {
			return
		}
		if _, err := p.Insert(r.ID, e.Target, at, e.Direction); err != nil {
			logger.Warn("exit target not placed",
				zap.Int("from", int(r.ID)),
				zap.Int("to", int(e.Target)),
				zap.String("direction", string(e.Direction)),
				zap.Error(err),
			)
		}
	}
}

func roomInts(ids []area.RoomID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
