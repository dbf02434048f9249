package layout_test

import (
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mudmap/internal/area"
)

var genDirections = []area.Direction{
	area.North, area.South, area.East, area.West, area.Up, area.Down, "ladder",
}

// randomArea draws an area of up to 12 rooms with arbitrary, possibly
// asymmetric, exits.
func randomArea(t *rapid.T) *area.Area {
	n := rapid.IntRange(1, 12).Draw(t, "rooms")
	rooms := make([]*area.Room, n)
	for i := range rooms {
		var exits []area.Exit
		k := rapid.IntRange(0, 3).Draw(t, "exits")
		for j := 0; j < k; j++ {
			exits = append(exits, area.Exit{
				Direction: rapid.SampledFrom(genDirections).Draw(t, "dir"),
				Target:    area.RoomID(rapid.IntRange(1, n+1).Draw(t, "target")),
			})
		}
		rooms[i] = room(i+1, exits...)
	}
	return newArea(rooms...)
}
