package romxml_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/importer/romxml"
)

func readShip(t *testing.T) *area.Area {
	t.Helper()
	path := filepath.Join("testdata", "areas", "ship.are.xml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	a, err := romxml.Parse(data, path)
	require.NoError(t, err)
	return a
}

func TestParse_AreaAndRooms(t *testing.T) {
	a := readShip(t)
	assert.Equal(t, "The Galeon", a.Name)
	assert.Equal(t, "testdata/areas/ship.are.xml", a.File)
	require.Len(t, a.Rooms, 5)

	deck := a.Rooms[0]
	assert.Equal(t, area.RoomID(100), deck.ID)
	assert.Equal(t, "Main Deck", deck.Name)
	assert.Equal(t, "inside", deck.Sector)
	assert.Equal(t, "Bow", a.Rooms[1].Name)
	assert.Equal(t, "air", a.Rooms[3].Sector)
}

func TestParse_VerticalExitsMoveToExtraExits(t *testing.T) {
	deck := readShip(t).Rooms[0]
	assert.Equal(t, []area.Exit{{Direction: area.North, Target: 101, Key: "0"}}, deck.Exits)
	assert.Equal(t, []area.Exit{
		{Direction: area.Down, Target: 102, Key: "0"},
		{Direction: area.Up, Target: 103, Key: "0"},
		{Direction: "ladder", Target: 104},
	}, deck.ExtraExits, "the ladder to 103 duplicates the up exit")
}

func TestParse_DirectionIsLowercasedAndKeyKept(t *testing.T) {
	bow := readShip(t).Rooms[1]
	require.Len(t, bow.Exits, 1)
	assert.Equal(t, area.South, bow.Exits[0].Direction)
	assert.Equal(t, "1555", bow.Exits[0].Key)
}

func TestParse_RoomWithoutExits(t *testing.T) {
	brig := readShip(t).Rooms[4]
	assert.Empty(t, brig.Exits)
	assert.Empty(t, brig.ExtraExits)
}

func TestParse_NameFallsBackToFileName(t *testing.T) {
	doc := `<area><rooms><node name="1"><name>A</name></node></rooms></area>`
	a, err := romxml.Parse([]byte(doc), "map/mirror.are.xml")
	require.NoError(t, err)
	assert.Equal(t, "mirror", a.Name)
	assert.Equal(t, "map/mirror.are.xml", a.File)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed":      `<area <rooms>`,
		"no area":        `<zone/>`,
		"no rooms":       `<area name="x"/>`,
		"empty rooms":    `<area><rooms/></area>`,
		"bad id":         `<area><rooms><node name="abc"/></rooms></area>`,
		"negative id":    `<area><rooms><node name="-4"/></rooms></area>`,
		"duplicate id":   `<area><rooms><node name="1"/><node name="1"/></rooms></area>`,
		"bad target":     `<area><rooms><node name="1"><exits><node name="north"><target>x</target></node></exits></node></rooms></area>`,
		"missing target": `<area><rooms><node name="1"><extraExits><node name="up"/></extraExits></node></rooms></area>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := romxml.Parse([]byte(doc), "bad.xml")
			assert.Error(t, err)
		})
	}
}

// Property: every room node written is read back with its id and stripped
// name, in document order.
func TestProperty_ParseKeepsRoomOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ids := rapid.SliceOfNDistinct(rapid.IntRange(0, 99999), 1, 20, rapid.ID[int]).Draw(rt, "ids")
		var b strings.Builder
		b.WriteString("<area><rooms>")
		for _, id := range ids {
			fmt.Fprintf(&b, `<node name="%d"><name>{WRoom %d{x</name></node>`, id, id)
		}
		b.WriteString("</rooms></area>")

		a, err := romxml.Parse([]byte(b.String()), "gen.xml")
		require.NoError(rt, err)
		require.Len(rt, a.Rooms, len(ids))
		for i, id := range ids {
			assert.Equal(rt, area.RoomID(id), a.Rooms[i].ID)
			assert.Equal(rt, fmt.Sprintf("Room %d", id), a.Rooms[i].Name)
		}
	})
}
