// Package scripting evaluates Lua hint scripts. A script runs in a
// throwaway VM with a reduced standard library and an opcode budget, and
// whatever it returns is handed back as plain Go data. Nothing here knows
// about layout; callers decode the data themselves.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of a hint script when the
// configuration leaves hints.instruction_limit at zero.
const DefaultInstructionLimit = 100_000

// blockedGlobals are base library functions that reach the file system or
// load further code.
var blockedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opcodeBudget cancels itself once its Done channel has been asked for
// limit times. The VM polls Done before every opcode, so the budget is an
// exact instruction count and a runaway hint script stops deterministically.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func newOpcodeBudget(limit int) (*opcodeBudget, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b, cancel
}

// NewSandboxedState returns a VM for one hint script. Only the base, table,
// string and math libraries are open, the loaders in blockedGlobals are
// removed, and execution stops after instLimit opcodes.
//
// Precondition: instLimit >= 0; 0 selects DefaultInstructionLimit.
// Postcondition: the caller must call the returned cancel and L.Close.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	budget, cancel := newOpcodeBudget(instLimit)
	L.SetContext(budget)
	return L, cancel
}
