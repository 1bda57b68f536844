package techmock

import (
	"fmt"

	"github.com/bembuild/bemtest/level"
	lua "github.com/yuin/gopher-lua"
)

// goToLua translates a Go value into its Lua equivalent. Maps and slices become
// tables, a lua.LGFunction becomes a callable, anything unknown is stringified.
func goToLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case []byte:
		return lua.LString(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case map[string]any:
		table := L.NewTable()
		for k, item := range x {
			table.RawSetString(k, goToLua(L, item))
		}
		return table
	case []any:
		table := L.NewTable()
		for _, item := range x {
			table.Append(goToLua(L, item))
		}
		return table
	case []string:
		table := L.NewTable()
		for _, item := range x {
			table.Append(lua.LString(item))
		}
		return table
	case lua.LGFunction:
		return L.NewFunction(x)
	case lua.LValue:
		return x
	default:
		return lua.LString(fmt.Sprintf("%v", x))
	}
}

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

func entityToTable(L *lua.LState, e level.Entity) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("block", lua.LString(e.Block))
	table.RawSetString("elem", lua.LString(e.Elem))
	table.RawSetString("mod_name", lua.LString(e.ModName))
	table.RawSetString("mod_val", lua.LString(e.ModVal))
	return table
}

func entityFromTable(table *lua.LTable) level.Entity {
	return level.Entity{
		Block:   getString(table, "block"),
		Elem:    getString(table, "elem"),
		ModName: getString(table, "mod_name"),
		ModVal:  getString(table, "mod_val"),
	}
}

// levelToTable exposes a level as a table with path, root and an entity_path helper.
func levelToTable(L *lua.LState, lvl level.Level) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("path", lua.LString(lvl.Path()))
	if root, err := lvl.Root(); err == nil {
		table.RawSetString("root", lua.LString(root))
	}
	table.RawSetString("entity_path", L.NewFunction(func(L *lua.LState) int {
		e := entityFromTable(L.CheckTable(1))
		suffix := L.CheckString(2)
		L.Push(lua.LString(lvl.EntityPath(e, suffix)))
		return 1
	}))
	table.RawSetString("files", L.NewFunction(func(L *lua.LState) int {
		files, err := lvl.Files()
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		list := L.NewTable()
		for _, f := range files {
			list.Append(lua.LString(f))
		}
		L.Push(list)
		return 1
	}))
	return table
}
