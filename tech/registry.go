package tech

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Registry maps technology names to either a module path inside the sandbox or a
// Go-native factory. It always contains at least the technology under test.
type Registry struct {
	paths     map[string]string
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		paths:     make(map[string]string),
		factories: make(map[string]Factory),
	}
}

// RegisterPath binds a technology name to a module path.
func (r *Registry) RegisterPath(name, path string) {
	r.paths[name] = path
}

// RegisterFactory binds a technology name to a Go-native factory.
func (r *Registry) RegisterFactory(name string, f Factory) {
	r.factories[name] = f
}

// Merge adds every entry of the given name to path mapping. Later merges win.
func (r *Registry) Merge(paths map[string]string) {
	for name, path := range paths {
		r.paths[name] = path
	}
}

// Paths returns a copy of the name to module path mapping.
func (r *Registry) Paths() map[string]string {
	return lo.Assign(map[string]string{}, r.paths)
}

// Names lists every registered technology name, sorted.
func (r *Registry) Names() []string {
	names := lo.Uniq(append(lo.Keys(r.paths), lo.Keys(r.factories)...))
	sort.Strings(names)
	return names
}

// Suggest returns the closest registered name for an unknown one, or "".
func (r *Registry) Suggest(name string) string {
	ranks := fuzzy.RankFindFold(name, r.Names())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
