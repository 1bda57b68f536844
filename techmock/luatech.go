package techmock

import (
	"fmt"

	"github.com/bembuild/bemtest/constant"
	"github.com/bembuild/bemtest/level"
	"github.com/bembuild/bemtest/tech"
	lua "github.com/yuin/gopher-lua"
)

// luaTech adapts a loaded Lua module to the Technology contract.
type luaTech struct {
	name  string
	state *lua.LState
}

func newLuaTech(name string, state *lua.LState) *luaTech {
	return &luaTech{name: name, state: state}
}

// Name returns the technology name, derived from the module file stem.
func (t *luaTech) Name() string {
	return t.name
}

// call executes a global Lua function safely. Errors raised by the module are
// propagated verbatim.
func (t *luaTech) call(fn string, args ...lua.LValue) error {
	luaFn := t.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return fmt.Errorf("function %s is not defined", fn)
	}

	return t.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    0,
		Protect: true,
	}, args...)
}

func (t *luaTech) Create(e level.Entity, lvl level.Level, opts tech.Options) error {
	return t.call(constant.TechCreateFn,
		entityToTable(t.state, e),
		levelToTable(t.state, lvl),
		goToLua(t.state, map[string]any(opts)),
	)
}

func (t *luaTech) Build(decl any, levels []level.Level, outputPrefix string, opts tech.Options) error {
	lvls := t.state.NewTable()
	for _, lvl := range levels {
		lvls.Append(levelToTable(t.state, lvl))
	}

	return t.call(constant.TechBuildFn,
		goToLua(t.state, decl),
		lvls,
		lua.LString(outputPrefix),
		goToLua(t.state, map[string]any(opts)),
	)
}
