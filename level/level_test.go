package level

import (
	"testing"

	"github.com/bembuild/bemtest/vfs"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntity(t *testing.T) {
	Convey("Entity naming", t, func() {
		So(Entity{Block: "menu"}.Name(), ShouldEqual, "menu")
		So(Entity{Block: "menu", Elem: "item"}.Name(), ShouldEqual, "menu__item")
		So(Entity{Block: "menu", ModName: "size", ModVal: "l"}.Name(), ShouldEqual, "menu_size_l")
		So(Entity{Block: "menu", Elem: "item", ModName: "state"}.Name(), ShouldEqual, "menu__item_state")
	})

	Convey("Entity directories", t, func() {
		So(Entity{Block: "menu"}.Dir(), ShouldEqual, "menu")
		So(Entity{Block: "menu", Elem: "item"}.Dir(), ShouldEqual, "menu/__item")
		So(Entity{Block: "menu", Elem: "item", ModName: "state"}.Dir(), ShouldEqual, "menu/__item/_state")
	})
}

func levelTree() vfs.Tree {
	return vfs.Tree{
		"project": vfs.Tree{
			".bem": vfs.Tree{},
			"blocks": vfs.Tree{
				".bem": vfs.Tree{
					"techs": vfs.Tree{
						"css.lua": "-- css tech",
						"js.lua":  "-- js tech",
						"notes":   "not a module",
					},
				},
				"menu": vfs.Tree{
					"menu.css": ".menu {}",
				},
			},
		},
	}
}

func TestGenericLevel(t *testing.T) {
	Convey("Generic level", t, func() {
		fs := lo.Must(vfs.New(levelTree()))
		lvl := New("/project/blocks", fs)

		Convey("Root resolves to the closest .bem ancestor", func() {
			So(lo.Must(lvl.Root()), ShouldEqual, "/project/blocks")

			nested := New("/project/blocks/menu", fs)
			So(lo.Must(nested.Root()), ShouldEqual, "/project/blocks")
		})

		Convey("Root fails when no marker exists", func() {
			bare := lo.Must(vfs.New(vfs.Tree{"blocks": vfs.Tree{}}))
			_, err := New("/blocks", bare).Root()
			So(err, ShouldNotBeNil)
		})

		Convey("Techs are discovered by naming convention", func() {
			techs := lo.Must(lvl.Techs())
			So(techs, ShouldContainKey, "css")
			So(techs, ShouldContainKey, "js")
			So(techs, ShouldNotContainKey, "notes")
			So(techs["css"], ShouldEqual, "/project/blocks/.bem/techs/css.lua")
		})

		Convey("Entity paths follow the level layout", func() {
			e := Entity{Block: "menu", Elem: "item"}
			So(lvl.EntityPath(e, "css"), ShouldEqual, "/project/blocks/menu/__item/menu__item.css")
		})

		Convey("Files enumerates regular files under the level", func() {
			files := lo.Must(lvl.Files())
			So(files, ShouldContain, "/project/blocks/menu/menu.css")
		})
	})
}

func TestStubLevel(t *testing.T) {
	Convey("Stub level", t, func() {
		fs := lo.Must(vfs.New(levelTree()))
		registry := map[string]string{"css": "/techs/css.lua"}
		lvl := NewStub("/project/blocks", fs, registry)

		Convey("Root is pinned to the sandbox root", func() {
			So(lo.Must(lvl.Root()), ShouldEqual, "/")
		})

		Convey("Techs returns exactly the supplied registry", func() {
			So(lo.Must(lvl.Techs()), ShouldResemble, registry)
		})

		Convey("Techs hands out a copy, not the registry itself", func() {
			techs := lo.Must(lvl.Techs())
			techs["js"] = "/techs/js.lua"
			So(lo.Must(lvl.Techs()), ShouldResemble, registry)
		})

		Convey("Entity paths defer to the generic behavior", func() {
			e := Entity{Block: "menu"}
			So(lvl.EntityPath(e, "css"), ShouldEqual, "/project/blocks/menu/menu.css")
		})
	})
}
