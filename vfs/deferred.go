package vfs

import (
	"time"

	"github.com/samber/mo"
)

// DeferredFS is the promise-style view over a sandbox. Every operation returns a
// mo.Future settled with the outcome of the equivalent synchronous call, so both
// views always observe the same tree.
type DeferredFS struct {
	fs *FS
}

// Deferred returns the promise-style view of the sandbox.
func (f *FS) Deferred() DeferredFS {
	return DeferredFS{fs: f}
}

// Exists resolves with the existence of p. It never rejects.
func (d DeferredFS) Exists(p string) *mo.Future[bool] {
	return mo.NewFuture(func(resolve func(bool), reject func(error)) {
		resolve(d.fs.Exists(p))
	})
}

// Read resolves with the content of the file at p.
func (d DeferredFS) Read(p string) *mo.Future[[]byte] {
	return mo.NewFuture(func(resolve func([]byte), reject func(error)) {
		content, err := d.fs.Read(p)
		if err != nil {
			reject(err)
			return
		}
		resolve(content)
	})
}

// Write resolves with true once content has been stored at p.
func (d DeferredFS) Write(p string, content []byte) *mo.Future[bool] {
	return mo.NewFuture(func(resolve func(bool), reject func(error)) {
		if err := d.fs.Write(p, content); err != nil {
			reject(err)
			return
		}
		resolve(true)
	})
}

// LastModified resolves with the modification timestamp of p.
func (d DeferredFS) LastModified(p string) *mo.Future[time.Time] {
	return mo.NewFuture(func(resolve func(time.Time), reject func(error)) {
		mtime, err := d.fs.LastModified(p)
		if err != nil {
			reject(err)
			return
		}
		resolve(mtime)
	})
}

// Touch resolves with true once the timestamp of p has been updated.
func (d DeferredFS) Touch(p string) *mo.Future[bool] {
	return mo.NewFuture(func(resolve func(bool), reject func(error)) {
		if err := d.fs.Touch(p); err != nil {
			reject(err)
			return
		}
		resolve(true)
	})
}
