package config

import (
	"testing"

	"github.com/bembuild/bemtest/filesystem"
	"github.com/bembuild/bemtest/key"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Should register every defined field", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Should apply factory defaults", func() {
			So(viper.GetBool(key.LogsWrite), ShouldBeFalse)
			So(viper.GetString(key.LogsLevel), ShouldEqual, "info")
			So(viper.GetBool(key.LoaderBytecodeCache), ShouldBeTrue)
		})
	})
}

func TestFieldEnv(t *testing.T) {
	Convey("Field.Env", t, func() {
		f := Default[key.LogsLevel]
		So(f.Env(), ShouldEqual, "BEMTEST_LOGS_LEVEL")
	})
}
