// Package level implements directory-scoped entity registries for build technologies.
//
// A level maps BEM entity names to source files under one directory and declares which
// technologies are available there. The generic implementation discovers both from the
// filesystem; the stub implementation pins them for tests.
package level

import "path"

// Entity identifies a block, an optional element and an optional modifier name/value.
type Entity struct {
	Block   string
	Elem    string
	ModName string
	ModVal  string
}

// Name returns the canonical entity name, e.g. "menu__item_state_active".
func (e Entity) Name() string {
	name := e.Block
	if e.Elem != "" {
		name += "__" + e.Elem
	}
	if e.ModName != "" {
		name += "_" + e.ModName
		if e.ModVal != "" {
			name += "_" + e.ModVal
		}
	}
	return name
}

// Dir returns the entity's directory relative to its level.
func (e Entity) Dir() string {
	dir := e.Block
	if e.Elem != "" {
		dir = path.Join(dir, "__"+e.Elem)
	}
	if e.ModName != "" {
		dir = path.Join(dir, "_"+e.ModName)
	}
	return dir
}

func (e Entity) String() string {
	return e.Name()
}
