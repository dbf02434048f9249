package layout_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/layout"
)

func ex(dir area.Direction, target int) area.Exit {
	return area.Exit{Direction: dir, Target: area.RoomID(target)}
}

// room builds a room the way the area parser does: up and down exits go to
// ExtraExits, everything else stays in Exits.
func room(id int, exits ...area.Exit) *area.Room {
	r := &area.Room{ID: area.RoomID(id), Name: "Room"}
	for _, e := range exits {
		if e.Direction.IsVertical() {
			r.AddExtraExits(e)
			continue
		}
		r.Exits = append(r.Exits, e)
	}
	return r
}

func newArea(rooms ...*area.Room) *area.Area {
	return &area.Area{Name: "test", File: "map/test.are.xml", Rooms: rooms}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func cellOf(t *testing.T, g *layout.Grid, id int) layout.Pos {
	t.Helper()
	at, ok := g.Find(area.RoomID(id))
	require.True(t, ok, "room %d not placed", id)
	return at
}

func placementOf(t *testing.T, res *layout.Result, id int) layout.Placement {
	t.Helper()
	p, ok := res.Placement(area.RoomID(id))
	require.True(t, ok, "room %d missing from result", id)
	return p
}

func roomID(id int) area.RoomID { return area.RoomID(id) }
