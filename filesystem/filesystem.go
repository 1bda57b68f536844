// Package filesystem provides the harness-ambient filesystem seam.
//
// It utilizes the afero library to allow seamless switching between OS-level and in-memory
// backends for everything that is not part of a test session's sandbox (log files,
// configuration files). Session sandboxes own their own afero tree, see the vfs package.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for ambient filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing and CI environments.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
