// Package vfs implements the in-memory filesystem sandbox owned by a single test session.
//
// A sandbox is built once from a nested Tree description and is exposed under two calling
// conventions at the same time: the synchronous methods on FS and the promise-style view
// returned by Deferred. Both views observe the same underlying afero tree.
package vfs

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/bembuild/bemtest/log"
	"github.com/spf13/afero"
)

// Tree describes a nested filesystem layout. A string or []byte value denotes a file
// with that content, a nested Tree (or map[string]any) denotes a directory.
type Tree map[string]any

// FS is the sandboxed filesystem of one session, rooted at "/".
type FS struct {
	backend afero.Afero
}

// New constructs a sandbox from the given tree description.
func New(tree Tree) (*FS, error) {
	f := &FS{backend: afero.Afero{Fs: afero.NewMemMapFs()}}
	if err := f.populate("/", tree); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FS) populate(dir string, tree Tree) error {
	for name, node := range tree {
		p := path.Join(dir, name)
		switch v := node.(type) {
		case Tree:
			if err := f.backend.MkdirAll(p, os.ModePerm); err != nil {
				return err
			}
			if err := f.populate(p, v); err != nil {
				return err
			}
		case map[string]any:
			if err := f.backend.MkdirAll(p, os.ModePerm); err != nil {
				return err
			}
			if err := f.populate(p, Tree(v)); err != nil {
				return err
			}
		case string:
			if err := f.backend.WriteFile(p, []byte(v), 0644); err != nil {
				return err
			}
		case []byte:
			if err := f.backend.WriteFile(p, v, 0644); err != nil {
				return err
			}
		default:
			return &TreeError{Path: p}
		}
	}
	return nil
}

// Afero exposes the shared backend for collaborators operating on the same tree.
func (f *FS) Afero() afero.Afero {
	return f.backend
}

// norm anchors a path at the sandbox root and cleans it.
func norm(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Exists reports whether a file or directory is present. It never fails.
func (f *FS) Exists(p string) bool {
	ok, err := f.backend.Exists(norm(p))
	if err != nil {
		return false
	}
	return ok
}

// Read returns the content of the file at p.
func (f *FS) Read(p string) ([]byte, error) {
	p = norm(p)
	info, err := f.backend.Stat(p)
	if err != nil || info.IsDir() {
		return nil, &NotFoundError{Path: p}
	}
	return f.backend.ReadFile(p)
}

// Write stores content at p, creating missing parent directories. An ancestor path
// component that is itself a file makes the path invalid.
func (f *FS) Write(p string, content []byte) error {
	p = norm(p)
	if ancestor := f.fileAncestor(p); ancestor != "" {
		return &InvalidPathError{Path: p, Ancestor: ancestor}
	}
	if err := f.backend.MkdirAll(path.Dir(p), os.ModePerm); err != nil {
		return err
	}
	log.Tracef("vfs: write %s (%d bytes)", p, len(content))
	return f.backend.WriteFile(p, content, 0644)
}

// LastModified returns the modification timestamp of p.
func (f *FS) LastModified(p string) (time.Time, error) {
	p = norm(p)
	info, err := f.backend.Stat(p)
	if err != nil {
		return time.Time{}, &NotFoundError{Path: p}
	}
	return info.ModTime(), nil
}

// Touch updates the modification timestamp of an existing path without altering content.
func (f *FS) Touch(p string) error {
	p = norm(p)
	if ok, _ := f.backend.Exists(p); !ok {
		return &NotFoundError{Path: p}
	}
	now := time.Now()
	return f.backend.Chtimes(p, now, now)
}

// fileAncestor returns the closest ancestor of p that exists and is a regular file,
// or "" when every existing ancestor is a directory.
func (f *FS) fileAncestor(p string) string {
	for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
		info, err := f.backend.Stat(dir)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return dir
		}
	}
	return ""
}
