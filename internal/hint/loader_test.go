package hint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/area"
	"github.com/cory-johannsen/mudmap/internal/hint"
	"github.com/cory-johannsen/mudmap/internal/scripting"
)

func assertGaleonHints(t *testing.T, tbl hint.Table) {
	t.Helper()
	h := tbl.Lookup("map/galeon.are.xml")
	assert.Equal(t, []area.RoomID{40004}, h.Ignore)
	require.Len(t, h.FixDirection, 6)
	assert.Equal(t, hint.DirectionFix{From: 40007, To: 40008, Dir: area.Down}, h.FixDirection[0])

	require.Len(t, h.MoveSectionRooms[0], 2)
	assert.Equal(t, hint.Move{Room: 40026, To: hint.Target{Steps: "ll"}}, h.MoveSectionRooms[0][1])

	require.Len(t, h.MovePlacedSectionRooms[2], 2)
	assert.Equal(t, area.RoomID(40010), h.MovePlacedSectionRooms[2][0].Room)

	anchor, ok := h.Anchor(9)
	require.True(t, ok)
	assert.Equal(t, area.RoomID(40102), anchor.Room)
	require.NotNil(t, anchor.To.At)
	assert.Equal(t, hint.Cell{Row: 1, Col: 0}, *anchor.To.At)

	require.Len(t, h.MoveMapRooms, 2)
	assert.Equal(t, "uul", h.MoveMapRooms[0].To.Steps)
	assert.Equal(t, 0, h.CentralSection)

	mirror := tbl.Lookup("map/mirror.are.xml")
	moves := mirror.AfterPlacement(0, 5394)
	require.Len(t, moves, 1)
	assert.Equal(t, "l", moves[0].To.Steps)
}

func TestLoadFile_YAML(t *testing.T) {
	tbl, err := hint.LoadFile(filepath.Join("testdata", "hints.yaml"), nil)
	require.NoError(t, err)
	assertGaleonHints(t, tbl)
}

func TestLoadFile_Lua(t *testing.T) {
	ev := scripting.NewEvaluator(0, zap.NewNop())
	tbl, err := hint.LoadFile(filepath.Join("testdata", "hints.lua"), ev)
	require.NoError(t, err)
	assertGaleonHints(t, tbl)
}

func TestLoadFile_YAMLAndLuaAgree(t *testing.T) {
	ev := scripting.NewEvaluator(0, zap.NewNop())
	fromYAML, err := hint.LoadFile(filepath.Join("testdata", "hints.yaml"), nil)
	require.NoError(t, err)
	fromLua, err := hint.LoadFile(filepath.Join("testdata", "hints.lua"), ev)
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromLua)
}

func TestLoadFile_LuaWithoutEvaluator(t *testing.T) {
	_, err := hint.LoadFile(filepath.Join("testdata", "hints.lua"), nil)
	assert.ErrorIs(t, err, hint.ErrNoEvaluator)
}

func TestLoadFile_EmptyPath(t *testing.T) {
	tbl, err := hint.LoadFile("", nil)
	require.NoError(t, err)
	assert.Empty(t, tbl)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := hint.LoadFile("hints.json", nil)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := hint.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestParse_MalformedTargetIsNotFatal(t *testing.T) {
	tbl, err := hint.Parse([]byte(`
area.xml:
  move_map_rooms:
    - {room: 1, to: [1, 2, 3]}
    - {room: 2, to: {row: 1}}
    - {room: 3, to: [4, 5]}
`))
	require.NoError(t, err)
	moves := tbl["area.xml"].MoveMapRooms
	require.Len(t, moves, 3)
	assert.NotEmpty(t, moves[0].To.Invalid)
	assert.NotEmpty(t, moves[1].To.Invalid)
	assert.Empty(t, moves[2].To.Invalid)
	assert.Equal(t, &hint.Cell{Row: 4, Col: 5}, moves[2].To.At)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := hint.Parse([]byte("area.xml: [unclosed"))
	assert.Error(t, err)
}

func TestParse_StartRoom(t *testing.T) {
	tbl, err := hint.Parse([]byte("area.xml:\n  start_room: 42\n"))
	require.NoError(t, err)
	require.NotNil(t, tbl["area.xml"].StartRoom)
	assert.Equal(t, area.RoomID(42), *tbl["area.xml"].StartRoom)
}

func TestFromValue_SectionOneStoredAsArray(t *testing.T) {
	ev := scripting.NewEvaluator(0, zap.NewNop())
	path := filepath.Join(t.TempDir(), "one.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
		return { ["a.xml"] = { move_section_rooms = { [1] = { { room = 7, to = "r" } } } } }
	`), 0644))
	tbl, err := hint.LoadLua(path, ev)
	require.NoError(t, err)
	require.Len(t, tbl["a.xml"].MoveSectionRooms[1], 1)
	assert.Equal(t, area.RoomID(7), tbl["a.xml"].MoveSectionRooms[1][0].Room)
}

func TestLoadLua_SectionZeroWithSparseSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hints.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return {
  ["map/sparse.are.xml"] = {
    move_section_rooms = {
      [0] = { { room = 1, to = "l" } },
      [2] = { { room = 9, to = "r" } },
    },
  },
}`), 0644))

	tbl, err := hint.LoadLua(path, scripting.NewEvaluator(0, zap.NewNop()))
	require.NoError(t, err)
	h := tbl.Lookup("map/sparse.are.xml")
	require.Len(t, h.MoveSectionRooms, 2)
	assert.Equal(t, []hint.Move{{Room: 1, To: hint.Target{Steps: "l"}}}, h.MoveSectionRooms[0])
	assert.Equal(t, []hint.Move{{Room: 9, To: hint.Target{Steps: "r"}}}, h.MoveSectionRooms[2])
}

func TestFromValue_RejectsNonTable(t *testing.T) {
	_, err := hint.FromValue("not a table")
	assert.Error(t, err)

	tbl, err := hint.FromValue(nil)
	require.NoError(t, err)
	assert.Empty(t, tbl)
}

func TestEncode_RoundTripsTargets(t *testing.T) {
	tbl, err := hint.LoadFile(filepath.Join("testdata", "hints.yaml"), nil)
	require.NoError(t, err)
	data, err := hint.Encode(tbl)
	require.NoError(t, err)
	again, err := hint.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, tbl, again)
}
