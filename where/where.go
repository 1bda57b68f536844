// Package where implements a cross-platform resolver for harness-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/bembuild/bemtest/constant"
	"github.com/bembuild/bemtest/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "BEMTEST_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the harness configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths elsewhere.
// Direct override: The path resolution can be explicitly specified via the BEMTEST_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Bemtest))
}

// Logs resolves the absolute path to the directory used for harness diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}
