package techmock

import (
	"github.com/bembuild/bemtest/constant"
	lua "github.com/yuin/gopher-lua"
)

// preloadFs installs the reserved fs module, binding the session sandbox into the
// interpreter. Technology modules interact with files exclusively through it.
func (l *Loader) preloadFs(state *lua.LState) {
	state.PreloadModule(constant.FsModule, func(L *lua.LState) int {
		mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
			"exists":        l.fsExists,
			"read":          l.fsRead,
			"write":         l.fsWrite,
			"last_modified": l.fsLastModified,
			"touch":         l.fsTouch,
		})
		L.Push(mod)
		return 1
	})
}

func (l *Loader) fsExists(L *lua.LState) int {
	L.Push(lua.LBool(l.fs.Exists(L.CheckString(1))))
	return 1
}

func (l *Loader) fsRead(L *lua.LState) int {
	content, err := l.fs.Read(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(content))
	return 1
}

func (l *Loader) fsWrite(L *lua.LState) int {
	if err := l.fs.Write(L.CheckString(1), []byte(L.CheckString(2))); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// fsLastModified returns the timestamp as fractional unix seconds.
func (l *Loader) fsLastModified(L *lua.LState) int {
	mtime, err := l.fs.LastModified(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(float64(mtime.UnixNano()) / 1e9))
	return 1
}

func (l *Loader) fsTouch(L *lua.LState) int {
	if err := l.fs.Touch(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}
