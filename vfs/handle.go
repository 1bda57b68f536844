package vfs

import (
	"os"
	"path"
	"time"

	"github.com/spf13/afero"
)

// Handle is a scoped writable file handle. Closing it finalizes the modification
// timestamp update, which is what the touch affordance relies on.
type Handle struct {
	file afero.File
	fs   *FS
	path string
}

// Open opens the file at p with the given flag (os.O_* values). When the flag allows
// creation, missing parent directories are created first.
func (f *FS) Open(p string, flag int) (*Handle, error) {
	p = norm(p)
	if ancestor := f.fileAncestor(p); ancestor != "" {
		return nil, &InvalidPathError{Path: p, Ancestor: ancestor}
	}
	if flag&os.O_CREATE != 0 {
		if err := f.backend.MkdirAll(path.Dir(p), os.ModePerm); err != nil {
			return nil, err
		}
	}
	file, err := f.backend.OpenFile(p, flag, 0644)
	if err != nil {
		return nil, &NotFoundError{Path: p}
	}
	return &Handle{file: file, fs: f, path: p}, nil
}

// Write appends content through the handle.
func (h *Handle) Write(content []byte) (int, error) {
	return h.file.Write(content)
}

// Close releases the handle and stamps the path with the current time.
func (h *Handle) Close() error {
	if err := h.file.Close(); err != nil {
		return err
	}
	now := time.Now()
	return h.fs.backend.Chtimes(h.path, now, now)
}
