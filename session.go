// Package bemtest is a fluent test-authoring harness for build-technology modules.
//
// A test declares a virtual source tree, a set of build levels and a technology
// under test, performs create/build actions against an in-memory sandbox and
// asserts on the resulting filesystem state. Setup calls mutate session state
// synchronously; actions and assertions are appended to one ordered deferred
// chain, drained by Notify.
//
//	bemtest.New("css", "/techs/css.lua").
//		WithSourceFiles(tree).
//		WithLevel("/blocks").
//		Create(level.Entity{Block: "menu"}).
//		ProducesFile("/blocks/menu/menu.css").
//		Notify(func(err error) { ... })
package bemtest

import (
	"sync"
	"time"

	"github.com/bembuild/bemtest/config"
	"github.com/bembuild/bemtest/level"
	"github.com/bembuild/bemtest/log"
	"github.com/bembuild/bemtest/tech"
	"github.com/bembuild/bemtest/techmock"
	"github.com/bembuild/bemtest/vfs"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Session is the fluent orchestrator owned by one test. It is single-use: once
// Notify has drained the chain, the session is spent.
type Session struct {
	techName string
	techPath mo.Option[string]
	factory  mo.Option[tech.Factory]

	tree        vfs.Tree
	mocks       techmock.Table
	redirects   techmock.Redirects
	passthrough []string
	levelPaths  []string
	techPaths   map[string]string
	options     tech.Options

	cfgErr error

	materialized bool
	matErr       error
	fs           *vfs.FS
	levels       []level.Level
	context      *tech.Context
	tech         tech.Technology

	chain     []step
	drained   bool
	startTime time.Time
	lastNamed string
}

// New starts a session for the technology module at the given sandbox path. The
// technology is registered under its name automatically.
func New(techName, techPath string) *Session {
	s := newSession(techName)
	s.techPath = mo.Some(techPath)
	return s
}

// NewWith starts a session for a Go-native technology built by the given factory.
func NewWith(techName string, factory tech.Factory) *Session {
	s := newSession(techName)
	s.factory = mo.Some(factory)
	return s
}

// setupOnce bootstraps the ambient config and logging stack on first use.
var setupOnce sync.Once

func newSession(techName string) *Session {
	setupOnce.Do(func() {
		if err := config.Setup(); err == nil {
			_ = log.Setup()
		}
	})
	return &Session{
		techName:  techName,
		mocks:     make(techmock.Table),
		redirects: make(techmock.Redirects),
		techPaths: make(map[string]string),
		options:   make(tech.Options),
	}
}

// guard panics on any use of a drained session.
func (s *Session) guard() {
	if s.drained {
		panic(ErrSessionDrained)
	}
}

// fail records the first configuration error; later ones are logged and dropped.
func (s *Session) fail(err error) {
	if s.cfgErr == nil {
		s.cfgErr = err
		return
	}
	log.Warnf("session: configuration error dropped (one already recorded): %v", err)
}

// Setup phase. All setters are synchronous, chainable and merge on repeat calls.

// WithSourceFiles sets the nested source tree the sandbox is built from.
func (s *Session) WithSourceFiles(tree vfs.Tree) *Session {
	s.guard()
	s.tree = tree
	return s
}

// WithMockedModules merges identifier to substitute entries into the mock table.
// Reserved identifiers are a configuration error, recorded now and surfaced before
// any sandbox or technology construction.
func (s *Session) WithMockedModules(table map[string]any) *Session {
	s.guard()
	if err := techmock.CheckTable(table); err != nil {
		s.fail(&ConfigurationError{Reason: "mocked modules", Err: err})
		return s
	}
	for ident, substitute := range table {
		s.mocks[ident] = substitute
	}
	return s
}

// WithResolveRedirects merges identifier to path entries into the resolve-only
// redirect table.
func (s *Session) WithResolveRedirects(redirects map[string]string) *Session {
	s.guard()
	for ident, path := range redirects {
		s.redirects[ident] = path
	}
	return s
}

// WithPassthroughModules declares identifiers that must resolve normally even when
// the mock table names them.
func (s *Session) WithPassthroughModules(idents ...string) *Session {
	s.guard()
	s.passthrough = append(s.passthrough, idents...)
	return s
}

// WithLevel configures a single build level, the one-element convenience form.
func (s *Session) WithLevel(path string) *Session {
	return s.WithLevels(path)
}

// WithLevels configures the ordered build level list.
func (s *Session) WithLevels(paths ...string) *Session {
	s.guard()
	s.levelPaths = paths
	return s
}

// WithTechs merges name to module path entries into the technology registry. The
// entry for the technology under test is always present and cannot be displaced.
func (s *Session) WithTechs(techs map[string]string) *Session {
	s.guard()
	for name, path := range techs {
		s.techPaths[name] = path
	}
	return s
}

// WithOptions merges entries into the options bag handed to every technology call.
func (s *Session) WithOptions(opts tech.Options) *Session {
	s.guard()
	for k, v := range opts {
		s.options[k] = v
	}
	return s
}

// TouchFile defers a timestamp bump of an existing sandbox file. It runs in chain
// order, after preceding actions and before later assertions.
func (s *Session) TouchFile(path string) *Session {
	s.enqueue("touch "+path, func() error {
		if err := s.materialize(nil); err != nil {
			return err
		}
		return s.fs.Touch(path)
	})
	return s
}

// materialize lazily constructs the sandbox, the loader, the stub levels, the
// context and the technology under test, exactly once. The declaration is only
// known when the first action is a build.
func (s *Session) materialize(decl any) error {
	if s.materialized {
		return s.matErr
	}
	s.materialized = true
	s.matErr = s.build(decl)
	return s.matErr
}

func (s *Session) build(decl any) error {
	if s.cfgErr != nil {
		return s.cfgErr
	}

	fs, err := vfs.New(s.tree)
	if err != nil {
		return &ConfigurationError{Reason: "source tree", Err: err}
	}
	s.fs = fs

	loader, err := techmock.New(fs, s.mocks, s.redirects, s.passthrough)
	if err != nil {
		return &ConfigurationError{Reason: "module mocks", Err: err}
	}

	registry := tech.NewRegistry()
	if factory, ok := s.factory.Get(); ok {
		registry.RegisterFactory(s.techName, factory)
		// The registry always names the technology under test, factories included.
		registry.RegisterPath(s.techName, "builtin:"+s.techName)
	}
	if path, ok := s.techPath.Get(); ok {
		registry.RegisterPath(s.techName, path)
	}
	registry.Merge(s.techPaths)

	paths := s.levelPaths
	if len(paths) == 0 {
		// A sandbox-rooted level keeps single-action tests terse.
		paths = []string{"/"}
	}
	techs := registry.Paths()
	s.levels = lo.Map(paths, func(p string, _ int) level.Level {
		return level.NewStub(p, fs, techs)
	})

	s.context = tech.NewContext(s.levels[0], fs, registry, loader, tech.ContextOptions{
		Root:        "/",
		Levels:      s.levels,
		Declaration: decl,
		TechPaths:   techs,
	})

	s.tech, err = s.context.GetTech(s.techName)
	if err != nil {
		return err
	}

	log.Infof("session: materialized sandbox for %q over %d level(s)", s.techName, len(s.levels))
	return nil
}

// Action phase. The first action call materializes the session.

// Create defers the technology's single-entity creation against the first level.
func (s *Session) Create(e level.Entity) *Session {
	s.guard()
	err := s.materialize(nil)
	s.enqueue("create "+e.Name(), func() error {
		if err != nil {
			return err
		}
		s.startTime = time.Now()
		return s.tech.Create(e, s.levels[0], s.options)
	})
	return s
}

// Build defers the technology's whole-project build over the full level list. The
// declaration may be a plain value or a func() (any, error) thunk resolved when the
// chain item runs.
func (s *Session) Build(decl any, outputPrefix string) *Session {
	s.guard()
	err := s.materialize(decl)
	s.enqueue("build "+outputPrefix, func() error {
		if err != nil {
			return err
		}
		resolved, declErr := resolveDeclaration(decl)
		if declErr != nil {
			return declErr
		}
		s.startTime = time.Now()
		return s.tech.Build(resolved, s.levels, outputPrefix, s.options)
	})
	return s
}

// resolveDeclaration unwraps thunk declarations; anything else passes through opaquely.
func resolveDeclaration(decl any) (any, error) {
	if thunk, ok := decl.(func() (any, error)); ok {
		return thunk()
	}
	return decl, nil
}

// Check defers an author-supplied inspection of the sandbox. Its failures surface
// through the chain like any other.
func (s *Session) Check(fn func(fs *vfs.FS) error) *Session {
	s.enqueue("check", func() error {
		if err := s.materialize(nil); err != nil {
			return err
		}
		return fn(s.fs)
	})
	return s
}

// FS exposes the sandbox for inspection after Notify. It is nil until the session
// has materialized.
func (s *Session) FS() *vfs.FS {
	return s.fs
}

// Notify drains the chain in declaration order and invokes done exactly once, with
// nil on success or the first encountered failure. This is the only point at which
// the chain is awaited rather than extended.
func (s *Session) Notify(done func(err error)) {
	s.guard()
	s.drained = true
	done(s.drain())
}
