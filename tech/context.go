package tech

import (
	"fmt"

	"github.com/bembuild/bemtest/level"
	"github.com/bembuild/bemtest/log"
	"github.com/bembuild/bemtest/vfs"
)

// ContextOptions configures a build context: the project root, the ordered level
// list, the declaration payload and the technology path table.
type ContextOptions struct {
	Root        string
	Levels      []level.Level
	Declaration any
	TechPaths   map[string]string
}

// Context resolves technology instances bound to one sandbox and level set.
// Resolution is cached, so one name always yields one instance per context.
type Context struct {
	level    level.Level
	fs       *vfs.FS
	registry *Registry
	loader   Loader
	opts     ContextOptions
	loaded   map[string]Technology
}

// NewContext builds a context around a primary level. The loader is injected so the
// module-loading boundary stays replaceable.
func NewContext(lvl level.Level, fs *vfs.FS, registry *Registry, loader Loader, opts ContextOptions) *Context {
	registry.Merge(opts.TechPaths)
	return &Context{
		level:    lvl,
		fs:       fs,
		registry: registry,
		loader:   loader,
		opts:     opts,
		loaded:   make(map[string]Technology),
	}
}

// Level returns the primary level the context was built around.
func (c *Context) Level() level.Level {
	return c.level
}

// Options returns the options the context was built with.
func (c *Context) Options() ContextOptions {
	return c.opts
}

// GetTech resolves a technology instance by name, via its Go-native factory or by
// loading its module through the injected loader.
func (c *Context) GetTech(name string) (Technology, error) {
	if t, ok := c.loaded[name]; ok {
		return t, nil
	}

	if factory, ok := c.registry.factories[name]; ok {
		t := factory(c.fs)
		c.loaded[name] = t
		log.Debugf("tech: resolved %q from factory", name)
		return t, nil
	}

	if path, ok := c.registry.paths[name]; ok {
		t, err := c.loader.Load(path)
		if err != nil {
			return nil, err
		}
		c.loaded[name] = t
		log.Debugf("tech: resolved %q from module %s", name, path)
		return t, nil
	}

	if hint := c.registry.Suggest(name); hint != "" {
		return nil, fmt.Errorf("unknown technology %q (did you mean %q?)", name, hint)
	}
	return nil, fmt.Errorf("unknown technology %q", name)
}
