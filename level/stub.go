package level

import (
	"path"

	"github.com/bembuild/bemtest/vfs"
	"github.com/samber/lo"
)

// stub is the test-facing level: its project root is pinned to the sandbox root and
// its technology registry is exactly what the caller supplied. Everything else
// behaves like a generic level.
type stub struct {
	path  string
	fs    *vfs.FS
	techs map[string]string
}

// NewStub returns a level with a fixed technology registry and a root pinned to "/".
func NewStub(p string, fs *vfs.FS, techs map[string]string) Level {
	return &stub{path: path.Clean(p), fs: fs, techs: techs}
}

func (l *stub) Path() string {
	return l.path
}

// Root is pinned to the sandbox root regardless of where the level directory lives.
func (l *stub) Root() (string, error) {
	return "/", nil
}

// Techs returns a copy of the caller-supplied registry. No filesystem scanning and
// no naming-convention discovery are applied.
func (l *stub) Techs() (map[string]string, error) {
	return lo.Assign(map[string]string{}, l.techs), nil
}

func (l *stub) EntityPath(e Entity, suffix string) string {
	return entityPath(l.path, e, suffix)
}

func (l *stub) Files() ([]string, error) {
	return listFiles(l.fs, l.path)
}
