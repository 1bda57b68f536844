// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Technology Function Identifiers - these constants define the required global function
// signatures for Lua technology modules.
const (
	TechCreateFn = "Create"
	TechBuildFn  = "Build"
)

// FsModule is the module identifier under which the sandboxed filesystem is exposed
// to technology modules. It is reserved and may never be mocked by a test author.
const FsModule = "fs"

// LuaExt is the filename extension of technology and helper modules.
const LuaExt = ".lua"

// BemDir is the per-level configuration directory a generic level is anchored to.
const BemDir = ".bem"
