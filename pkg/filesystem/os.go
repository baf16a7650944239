package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// FS is the set of filesystem operations dotsync needs.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm fs.FileMode) error

	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	Remove(name string) error
	RemoveAll(path string) error
}

// osFS implements FS on the real filesystem through synthfs, rooted at "/"
// with absolute paths enabled.
type osFS struct {
	fs sfs.FullFileSystem
}

// NewOS creates a new OS filesystem implementation
func NewOS() FS {
	osfs := sfs.NewOSFileSystem("/")
	return &osFS{
		fs: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
	}
}

// abs anchors relative names at the working directory; the synthfs root
// is "/", which would otherwise resolve them from there.
func abs(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if p, err := filepath.Abs(name); err == nil {
		return p
	}
	return name
}

// Stat must follow links; it stays on os alongside Lstat.
func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Lstat has no synthfs counterpart.
func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(o.fs, abs(name))
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return o.fs.MkdirAll(abs(path), perm)
}

func (o *osFS) Symlink(oldname, newname string) error {
	return o.fs.Symlink(oldname, abs(newname))
}

func (o *osFS) Readlink(name string) (string, error) {
	return o.fs.Readlink(abs(name))
}

func (o *osFS) Remove(name string) error {
	return o.fs.Remove(abs(name))
}

func (o *osFS) RemoveAll(path string) error {
	return o.fs.RemoveAll(abs(path))
}
