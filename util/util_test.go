package util

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/file.lua"), ShouldEqual, "file")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "step", "steps"), ShouldEqual, "1 step")
		So(Quantify(2, "step", "steps"), ShouldEqual, "2 steps")
	})
}

func TestIgnore(t *testing.T) {
	Convey("Ignore", t, func() {
		So(func() { Ignore(func() error { return errors.New("dropped") }) }, ShouldNotPanic)
	})
}
