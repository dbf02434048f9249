package scripting_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mudmap/internal/scripting"
)

type helperT interface {
	require.TestingT
	Helper()
}

func evalTable(t helperT, src string) any {
	t.Helper()
	L, cancel := scripting.NewSandboxedState(0)
	defer cancel()
	defer L.Close()
	require.NoError(t, L.DoString(src))
	v, err := scripting.ToGo(L.Get(-1))
	require.NoError(t, err)
	return v
}

func TestToGo_SequenceIsList(t *testing.T) {
	assert.Equal(t, []any{"a", "b", "c"}, evalTable(t, `return {"a", "b", "c"}`))
	assert.Equal(t, []any{}, evalTable(t, `return {}`))
}

func TestToGo_ZeroKeyIsMap(t *testing.T) {
	v := evalTable(t, `return {[0] = "a", [2] = "b"}`)
	assert.Equal(t, map[any]any{0: "a", 2: "b"}, v)
}

func TestToGo_SparseKeysAreMap(t *testing.T) {
	assert.Equal(t, map[any]any{1: "a", 3: "b"}, evalTable(t, `return {[1] = "a", [3] = "b"}`))
	assert.Equal(t, map[any]any{0: "a"}, evalTable(t, `return {[0] = "a"}`))
}

func TestToGo_FractionalKeyIsMap(t *testing.T) {
	assert.Equal(t, map[any]any{1: "a", 1.5: "b"}, evalTable(t, `return {[1] = "a", [1.5] = "b"}`))
}

func TestToGo_MixedKeysAreMap(t *testing.T) {
	assert.Equal(t, map[any]any{1: "a", "x": "b"}, evalTable(t, `return {"a", x = "b"}`))
}

// Property: a table keyed by any set of integers keeps every key unless the
// keys are exactly 1..n.
func TestProperty_ToGoKeepsIntegerKeys(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfNDistinct(rapid.IntRange(-5, 10), 1, 8, rapid.ID[int]).Draw(rt, "keys")
		src := "return {"
		for _, k := range keys {
			src += "[" + strconv.Itoa(k) + "] = " + strconv.Itoa(k*10) + ","
		}
		src += "}"

		v := evalTable(rt, src)
		if list, ok := v.([]any); ok {
			require.Len(rt, list, len(keys))
			for i, item := range list {
				assert.Equal(rt, (i+1)*10, item)
			}
			return
		}
		m, ok := v.(map[any]any)
		require.True(rt, ok, "expected map, got %T", v)
		require.Len(rt, m, len(keys))
		for _, k := range keys {
			assert.Equal(rt, k*10, m[k])
		}
	})
}
