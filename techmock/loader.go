// Package techmock loads Lua technology modules into a sandboxed interpreter with
// module substitution.
//
// Every require made transitively inside a loaded module resolves against, in order:
// the caller's mock table, the stock library preloads, and finally the session's
// virtual filesystem. Mocking is scoped to a single load operation; independent
// sessions never share interpreter state.
package techmock

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/bembuild/bemtest/constant"
	"github.com/bembuild/bemtest/key"
	"github.com/bembuild/bemtest/log"
	"github.com/bembuild/bemtest/tech"
	"github.com/bembuild/bemtest/util"
	"github.com/bembuild/bemtest/vfs"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Table maps module identifiers to inline substitutes. Values are translated to Lua:
// maps and slices become tables, scalars become their Lua equivalents, and a
// lua.LGFunction becomes a callable.
type Table map[string]any

// Redirects maps module identifiers to replacement paths for resolve-only lookups.
// Redirecting an identifier never affects actual loading.
type Redirects map[string]string

// Reserved lists module identifiers managed by the harness itself. Substituting one
// of them is a configuration error, raised at setup time.
var Reserved = []string{constant.FsModule}

// ReservedModuleError reports an attempt to mock a harness-managed module.
type ReservedModuleError struct {
	Ident string
}

func (e *ReservedModuleError) Error() string {
	return fmt.Sprintf("techmock: module %q is managed by the harness and cannot be mocked", e.Ident)
}

// CheckTable validates a mock table against the reserved identifiers. The shape of
// the substitute values is irrelevant; the identifiers alone decide.
func CheckTable(mocks Table) error {
	for _, ident := range Reserved {
		if _, ok := mocks[ident]; ok {
			return &ReservedModuleError{Ident: ident}
		}
	}
	return nil
}

// Loader loads technology modules for one session.
type Loader struct {
	fs          *vfs.FS
	mocks       Table
	redirects   Redirects
	passthrough map[string]struct{}
	protos      map[string]*lua.FunctionProto
	loaded      map[string]tech.Technology
}

// New constructs a loader over the session sandbox. Mock identifiers are validated
// immediately.
func New(fs *vfs.FS, mocks Table, redirects Redirects, passthrough []string) (*Loader, error) {
	if err := CheckTable(mocks); err != nil {
		return nil, err
	}
	return &Loader{
		fs:          fs,
		mocks:       mocks,
		redirects:   redirects,
		passthrough: lo.SliceToMap(passthrough, func(s string) (string, struct{}) { return s, struct{}{} }),
		protos:      make(map[string]*lua.FunctionProto),
		loaded:      make(map[string]tech.Technology),
	}, nil
}

// Load executes the module at the given sandbox path and wraps it as a Technology.
// Loading the same path twice returns the already-loaded instance.
func (l *Loader) Load(modPath string) (tech.Technology, error) {
	if t, ok := l.loaded[modPath]; ok {
		return t, nil
	}

	state := l.newState()
	if err := l.run(state, modPath); err != nil {
		return nil, err
	}

	name := util.FileStem(modPath)
	for _, fn := range []string{constant.TechCreateFn, constant.TechBuildFn} {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	t := newLuaTech(name, state)
	l.loaded[modPath] = t
	log.Debugf("techmock: loaded %s from %s", name, modPath)
	return t, nil
}

// newState prepares a fresh interpreter: stock libraries, the reserved fs module,
// the mock preloads, the sandbox searcher and the resolve global.
func (l *Loader) newState() *lua.LState {
	state := lua.NewState()
	libs.Preload(state)
	l.preloadFs(state)

	for ident, mock := range l.mocks {
		if _, ok := l.passthrough[ident]; ok {
			continue
		}
		substitute := goToLua(state, mock)
		state.PreloadModule(ident, func(L *lua.LState) int {
			L.Push(substitute)
			return 1
		})
	}

	l.installSearcher(state)
	l.installResolve(state)
	return state
}

// run compiles and executes a module chunk, reusing cached prototypes.
func (l *Loader) run(state *lua.LState, modPath string) error {
	proto, err := l.compile(modPath)
	if err != nil {
		return err
	}
	state.Push(state.NewFunctionFromProto(proto))
	return state.PCall(0, lua.MultRet, nil)
}

// compile parses a module from the sandbox into a reusable bytecode prototype.
func (l *Loader) compile(modPath string) (*lua.FunctionProto, error) {
	if proto, ok := l.protos[modPath]; ok {
		return proto, nil
	}

	src, err := l.fs.Read(modPath)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(src), modPath)
	if err != nil {
		return nil, err
	}

	proto, err := lua.Compile(chunk, modPath)
	if err != nil {
		return nil, err
	}

	// Caching is on unless configuration explicitly disables it.
	if !viper.IsSet(key.LoaderBytecodeCache) || viper.GetBool(key.LoaderBytecodeCache) {
		l.protos[modPath] = proto
	}
	return proto, nil
}

// lookup resolves a module identifier to a sandbox path.
func (l *Loader) lookup(ident string) (string, bool) {
	for _, candidate := range []string{ident, ident + constant.LuaExt} {
		if !strings.HasPrefix(candidate, "/") {
			candidate = "/" + candidate
		}
		candidate = path.Clean(candidate)
		if l.fs.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// installSearcher appends a package.loaders entry that resolves modules against the
// sandbox, so transitive requires stay inside it.
func (l *Loader) installSearcher(state *lua.LState) {
	pkg, ok := state.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	loaders, ok := state.GetField(pkg, "loaders").(*lua.LTable)
	if !ok {
		return
	}
	loaders.Append(state.NewFunction(func(L *lua.LState) int {
		ident := L.CheckString(1)
		modPath, ok := l.lookup(ident)
		if !ok {
			L.Push(lua.LString(fmt.Sprintf("\n\tno module %q in sandbox", ident)))
			return 1
		}
		proto, err := l.compile(modPath)
		if err != nil {
			L.RaiseError("load module %q: %s", ident, err.Error())
			return 0
		}
		L.Push(L.NewFunctionFromProto(proto))
		return 1
	}))
}

// installResolve exposes resolve(ident) -> path. Redirects take precedence; the
// module at the returned path is never loaded.
func (l *Loader) installResolve(state *lua.LState) {
	state.SetGlobal("resolve", state.NewFunction(func(L *lua.LState) int {
		ident := L.CheckString(1)
		if redirected, ok := l.redirects[ident]; ok {
			L.Push(lua.LString(redirected))
			return 1
		}
		if modPath, ok := l.lookup(ident); ok {
			L.Push(lua.LString(modPath))
			return 1
		}
		L.RaiseError("cannot resolve module %q", ident)
		return 0
	}))
}
