package tech

import (
	"errors"
	"testing"

	"github.com/bembuild/bemtest/level"
	"github.com/bembuild/bemtest/vfs"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type nopTech struct {
	name string
}

func (t *nopTech) Name() string { return t.name }

func (t *nopTech) Create(level.Entity, level.Level, Options) error { return nil }

func (t *nopTech) Build(any, []level.Level, string, Options) error { return nil }

type fakeLoader struct {
	loads  int
	loaded map[string]Technology
}

func (l *fakeLoader) Load(path string) (Technology, error) {
	if l.loaded == nil {
		l.loaded = make(map[string]Technology)
	}
	if t, ok := l.loaded[path]; ok {
		return t, nil
	}
	l.loads++
	t := &nopTech{name: path}
	l.loaded[path] = t
	return t, nil
}

func TestRegistry(t *testing.T) {
	Convey("Registry", t, func() {
		r := NewRegistry()
		r.RegisterPath("css", "/techs/css.lua")
		r.RegisterFactory("js", func(*vfs.FS) Technology { return &nopTech{name: "js"} })

		Convey("Names covers paths and factories", func() {
			So(r.Names(), ShouldResemble, []string{"css", "js"})
		})

		Convey("Merge overlays later entries", func() {
			r.Merge(map[string]string{"css": "/other/css.lua", "html": "/techs/html.lua"})
			paths := r.Paths()
			So(paths["css"], ShouldEqual, "/other/css.lua")
			So(paths["html"], ShouldEqual, "/techs/html.lua")
		})

		Convey("Paths returns a copy", func() {
			paths := r.Paths()
			paths["stolen"] = "/x"
			So(r.Paths(), ShouldNotContainKey, "stolen")
		})

		Convey("Suggest finds the closest name", func() {
			So(r.Suggest("cs"), ShouldEqual, "css")
			So(r.Suggest("zzz"), ShouldEqual, "")
		})
	})
}

func TestContext(t *testing.T) {
	Convey("Context", t, func() {
		fs := lo.Must(vfs.New(vfs.Tree{"blocks": vfs.Tree{}}))
		lvl := level.NewStub("/blocks", fs, nil)

		registry := NewRegistry()
		registry.RegisterFactory("css", func(*vfs.FS) Technology { return &nopTech{name: "css"} })

		loader := &fakeLoader{}
		ctx := NewContext(lvl, fs, registry, loader, ContextOptions{
			Root:      "/",
			Levels:    []level.Level{lvl},
			TechPaths: map[string]string{"js": "/techs/js.lua"},
		})

		Convey("Resolves factories", func() {
			tech := lo.Must(ctx.GetTech("css"))
			So(tech.Name(), ShouldEqual, "css")
		})

		Convey("Resolves module paths through the loader", func() {
			tech := lo.Must(ctx.GetTech("js"))
			So(tech.Name(), ShouldEqual, "/techs/js.lua")
			So(loader.loads, ShouldEqual, 1)
		})

		Convey("Caches one instance per name", func() {
			first := lo.Must(ctx.GetTech("js"))
			second := lo.Must(ctx.GetTech("js"))
			So(first, ShouldEqual, second)
			So(loader.loads, ShouldEqual, 1)
		})

		Convey("Unknown names fail with a suggestion", func() {
			_, err := ctx.GetTech("cs")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `did you mean "css"`)
		})

		Convey("Loader failures propagate", func() {
			failing := loaderFunc(func(string) (Technology, error) { return nil, errors.New("boom") })
			failCtx := NewContext(lvl, fs, NewRegistry(), failing, ContextOptions{
				TechPaths: map[string]string{"js": "/techs/js.lua"},
			})
			_, err := failCtx.GetTech("js")
			So(err.Error(), ShouldEqual, "boom")
		})
	})
}

type loaderFunc func(string) (Technology, error)

func (f loaderFunc) Load(path string) (Technology, error) { return f(path) }
