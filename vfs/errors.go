package vfs

import "fmt"

// NotFoundError reports an operation against an absent path, or a read against a directory.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vfs: no such file: %s", e.Path)
}

// InvalidPathError reports a write whose ancestor path component is itself a file.
type InvalidPathError struct {
	Path     string
	Ancestor string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("vfs: invalid path %s: ancestor %s is a file", e.Path, e.Ancestor)
}

// TreeError reports an unsupported node value in a Tree description.
type TreeError struct {
	Path string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("vfs: unsupported source tree node at %s (want string, []byte or nested map)", e.Path)
}
