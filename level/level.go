package level

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bembuild/bemtest/constant"
	"github.com/bembuild/bemtest/util"
	"github.com/bembuild/bemtest/vfs"
	"github.com/spf13/afero"
)

// Level is the capability a build technology sees: where the level lives, where the
// project root is, which technologies are available and how entity files are laid out.
type Level interface {
	// Path returns the level directory inside the sandbox.
	Path() string

	// Root resolves the project root the level belongs to.
	Root() (string, error)

	// Techs enumerates available technologies as a name to module path mapping.
	Techs() (map[string]string, error)

	// EntityPath constructs the source file path of an entity for a technology suffix.
	EntityPath(e Entity, suffix string) string

	// Files lists every regular file under the level directory.
	Files() ([]string, error)
}

// generic is the conventional level: project root and technologies are discovered
// from the filesystem.
type generic struct {
	path string
	fs   *vfs.FS
}

// New returns a generic level at the given sandbox path.
func New(p string, fs *vfs.FS) Level {
	return &generic{path: path.Clean(p), fs: fs}
}

func (l *generic) Path() string {
	return l.path
}

// Root walks up from the level directory until it finds a .bem marker directory.
func (l *generic) Root() (string, error) {
	for dir := l.path; ; dir = path.Dir(dir) {
		if l.fs.Exists(path.Join(dir, constant.BemDir)) {
			return dir, nil
		}
		if dir == "/" {
			return "", fmt.Errorf("level %s: no %s marker found up to the root", l.path, constant.BemDir)
		}
	}
}

// Techs scans <level>/.bem/techs for technology modules, mapping file stems to paths.
func (l *generic) Techs() (map[string]string, error) {
	dir := path.Join(l.path, constant.BemDir, "techs")
	entries, err := l.fs.Afero().ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("level %s: enumerate techs: %w", l.path, err)
	}

	techs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constant.LuaExt {
			continue
		}
		techs[util.FileStem(entry.Name())] = path.Join(dir, entry.Name())
	}
	return techs, nil
}

func (l *generic) EntityPath(e Entity, suffix string) string {
	return entityPath(l.path, e, suffix)
}

func (l *generic) Files() ([]string, error) {
	return listFiles(l.fs, l.path)
}

// Shared helpers used by both level implementations.

func entityPath(levelPath string, e Entity, suffix string) string {
	return path.Join(levelPath, e.Dir(), e.Name()+"."+suffix)
}

func listFiles(fs *vfs.FS, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fs.Afero(), root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
