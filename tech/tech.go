// Package tech defines the technology module contract and the resolution context that
// binds technologies to a sandboxed level set.
package tech

import (
	"github.com/bembuild/bemtest/level"
	"github.com/bembuild/bemtest/vfs"
)

// Options is an opaque bag of technology options, passed through uninterpreted.
type Options map[string]any

// Technology is the contract a build technology implements. The harness awaits
// completion or failure and never interprets results beyond that.
type Technology interface {
	// Name returns the technology name, which doubles as its file suffix.
	Name() string

	// Create produces the source file(s) of a single entity on a level.
	Create(e level.Entity, lvl level.Level, opts Options) error

	// Build assembles the whole project output for a declaration over an ordered
	// level list. The declaration may be any structure the technology understands.
	Build(decl any, levels []level.Level, outputPrefix string, opts Options) error
}

// Factory constructs a Go-native technology bound to a sandbox.
type Factory func(fs *vfs.FS) Technology

// Loader resolves a technology module located at a sandbox path. Implementations
// must return the same instance when the same path is loaded twice.
type Loader interface {
	Load(path string) (Technology, error)
}
