package scripting

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// maxDepth bounds table nesting during conversion; it also stops
// self-referencing tables.
const maxDepth = 32

// ToGo converts a Lua value into plain Go data:
//   - nil, booleans and strings map to their Go counterparts
//   - integral numbers become int, others float64
//   - a table whose keys are exactly 1..n becomes []any
//   - any other table becomes map[any]any keyed by converted keys
//
// Functions, userdata, threads and channels are rejected.
//
// Postcondition: Returns the converted value, or a non-nil error.
func ToGo(v lua.LValue) (any, error) {
	return toGo(v, 0)
}

func toGo(v lua.LValue, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("table nesting exceeds %d levels", maxDepth)
	}
	switch val := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		return bool(val), nil
	case lua.LString:
		return string(val), nil
	case lua.LNumber:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			return int(f), nil
		}
		return f, nil
	case *lua.LTable:
		return tableToGo(val, depth)
	default:
		return nil, fmt.Errorf("unsupported Lua value of type %s", v.Type())
	}
}

func tableToGo(t *lua.LTable, depth int) (any, error) {
	count := 0
	t.ForEach(func(lua.LValue, lua.LValue) { count++ })

	if isList(t, count) {
		list := make([]any, 0, count)
		for i := 1; i <= count; i++ {
			item, err := toGo(t.RawGetInt(i), depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list = append(list, item)
		}
		return list, nil
	}

	out := make(map[any]any, count)
	var firstErr error
	t.ForEach(func(k, v lua.LValue) {
		if firstErr != nil {
			return
		}
		key, err := toGo(k, depth+1)
		if err != nil {
			firstErr = fmt.Errorf("key %s: %w", k.String(), err)
			return
		}
		val, err := toGo(v, depth+1)
		if err != nil {
			firstErr = fmt.Errorf("[%v]: %w", key, err)
			return
		}
		out[key] = val
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// isList reports whether every key of t is an integer in 1..count. With count
// keys in total that makes the keys exactly 1..count.
func isList(t *lua.LTable, count int) bool {
	list := true
	t.ForEach(func(k, _ lua.LValue) {
		if !list {
			return
		}
		n, ok := k.(lua.LNumber)
		if !ok {
			list = false
			return
		}
		f := float64(n)
		list = f == math.Trunc(f) && f >= 1 && f <= float64(count)
	})
	return list
}
