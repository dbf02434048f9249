package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the mudmap.* Lua table into L:
//   - mudmap.log.info(msg), mudmap.log.warn(msg): write to the evaluator's logger
//   - mudmap.at(row, col): returns {row, col}, an absolute cell target
//   - mudmap.fix(from, to, dir): returns {from=, to=, dir=}, a direction fix
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: the mudmap global is defined in L.
func (e *Evaluator) RegisterModules(L *lua.LState, script string) {
	mod := L.NewTable()

	logTbl := L.NewTable()
	L.SetField(logTbl, "info", L.NewFunction(func(L *lua.LState) int {
		e.logger.Info(L.CheckString(1), zap.String("script", script))
		return 0
	}))
	L.SetField(logTbl, "warn", L.NewFunction(func(L *lua.LState) int {
		e.logger.Warn(L.CheckString(1), zap.String("script", script))
		return 0
	}))
	L.SetField(mod, "log", logTbl)

	L.SetField(mod, "at", L.NewFunction(func(L *lua.LState) int {
		cell := L.NewTable()
		cell.Append(L.CheckNumber(1))
		cell.Append(L.CheckNumber(2))
		L.Push(cell)
		return 1
	}))

	L.SetField(mod, "fix", L.NewFunction(func(L *lua.LState) int {
		fix := L.NewTable()
		L.SetField(fix, "from", L.CheckNumber(1))
		L.SetField(fix, "to", L.CheckNumber(2))
		L.SetField(fix, "dir", lua.LString(L.CheckString(3)))
		L.Push(fix)
		return 1
	}))

	L.SetGlobal("mudmap", mod)
}
