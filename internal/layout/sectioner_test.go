package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
	"github.com/cory-johannsen/mudmap/internal/layout"
)

func partition(t *testing.T, a *area.Area, h *hint.Hint, logger *zap.Logger) []*layout.Section {
	t.Helper()
	g, err := a.Graph()
	require.NoError(t, err)
	sections, err := layout.Partition(a, g, h, logger)
	require.NoError(t, err)
	return sections
}

func sectionIDs(sections []*layout.Section) [][]area.RoomID {
	out := make([][]area.RoomID, len(sections))
	for i, s := range sections {
		out[i] = s.RoomIDs()
	}
	return out
}

func TestPartition_ConnectedComponents(t *testing.T) {
	a := newArea(
		room(1, ex(area.East, 2)),
		room(2, ex(area.West, 1)),
		room(3, ex(area.East, 4)),
		room(4, ex(area.West, 3)),
	)
	sections := partition(t, a, nil, zap.NewNop())
	assert.Equal(t, [][]area.RoomID{{1, 2}, {3, 4}}, sectionIDs(sections))
	assert.Equal(t, 0, sections[0].ID)
	assert.Equal(t, 1, sections[1].ID)
	assert.Empty(t, sections[0].AdjExits)
}

func TestPartition_DirectionIgnored(t *testing.T) {
	a := newArea(
		room(1, ex(area.North, 2)),
		room(2),
		room(3, ex(area.West, 2)),
	)
	sections := partition(t, a, nil, zap.NewNop())
	assert.Equal(t, [][]area.RoomID{{1, 2, 3}}, sectionIDs(sections))
}

func TestPartition_MergesSingletonsIntoSmallestNeighbour(t *testing.T) {
	a := newArea(
		room(1, ex(area.East, 2)),
		room(2, ex(area.West, 1), ex(area.Up, 3)),
		room(3, ex(area.Down, 2)),
		room(4, ex(area.East, 5)),
		room(5, ex(area.West, 4), ex(area.East, 6)),
		room(6, ex(area.West, 5)),
		room(7, ex(area.Up, 2), ex(area.Down, 4)),
	)
	sections := partition(t, a, nil, zap.NewNop())
	assert.Equal(t, [][]area.RoomID{{1, 2, 3, 7}, {4, 5, 6}}, sectionIDs(sections), "7 ties at size 3 and goes to the lower index")

	require.Len(t, sections[0].AdjExits, 1)
	assert.Equal(t, layout.AdjExit{Room: 7, Section: 1, Exit: ex(area.Down, 4)}, sections[0].AdjExits[0])
	assert.Empty(t, sections[1].AdjExits)
}

func TestPartition_SingletonPrefersSmallerSection(t *testing.T) {
	a := newArea(
		room(1, ex(area.East, 2)),
		room(2, ex(area.West, 1), ex(area.East, 3)),
		room(3, ex(area.West, 2)),
		room(4, ex(area.East, 5)),
		room(5, ex(area.West, 4)),
		room(6, ex(area.Up, 1), ex(area.Down, 5)),
	)
	sections := partition(t, a, nil, zap.NewNop())
	assert.Equal(t, [][]area.RoomID{{1, 2, 3}, {4, 5, 6}}, sectionIDs(sections))
}

func TestPartition_IsolatedRoomStaysAlone(t *testing.T) {
	a := newArea(
		room(1, ex(area.East, 2)),
		room(2, ex(area.West, 1)),
		room(3),
	)
	sections := partition(t, a, nil, zap.NewNop())
	assert.Equal(t, [][]area.RoomID{{1, 2}, {3}}, sectionIDs(sections))
}

func TestPartition_StartRoom(t *testing.T) {
	a := newArea(
		room(1, ex(area.East, 2)),
		room(2, ex(area.West, 1)),
		room(3, ex(area.East, 4)),
		room(4, ex(area.West, 3)),
	)
	start := area.RoomID(4)
	sections := partition(t, a, &hint.Hint{StartRoom: &start}, zap.NewNop())
	assert.Equal(t, [][]area.RoomID{{4, 3}, {1, 2}}, sectionIDs(sections))
}

func TestPartition_UnknownStartRoomWarns(t *testing.T) {
	logger, logs := observedLogger()
	a := newArea(room(1, ex(area.East, 2)), room(2, ex(area.West, 1)))
	start := area.RoomID(99)
	sections := partition(t, a, &hint.Hint{StartRoom: &start}, logger)
	assert.Equal(t, [][]area.RoomID{{1, 2}}, sectionIDs(sections))
	assert.Equal(t, 1, logs.FilterMessage("start room not in area, using first room").Len())
}

// Property: sections are disjoint and together cover every room.
func TestProperty_PartitionCoversRooms(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := randomArea(rt)
		g, err := a.Graph()
		require.NoError(rt, err)
		sections, err := layout.Partition(a, g, nil, zap.NewNop())
		require.NoError(rt, err)

		seen := make(map[area.RoomID]int)
		for i, s := range sections {
			assert.Equal(rt, i, s.ID)
			for _, id := range s.RoomIDs() {
				seen[id]++
			}
		}
		assert.Len(rt, seen, len(a.Rooms))
		for id, n := range seen {
			if n != 1 {
				rt.Fatalf("room %d in %d sections", id, n)
			}
		}
	})
}
