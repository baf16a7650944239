package testutil

import (
	"io/fs"

	"github.com/dotsync/dotsync/pkg/filesystem"
)

// MockFS is a filesystem.FS that delegates to Base unless a Func field
// overrides the operation. Calls records every operation name in order.
type MockFS struct {
	Base filesystem.FS

	StatFunc      func(name string) (fs.FileInfo, error)
	LstatFunc     func(name string) (fs.FileInfo, error)
	ReadFileFunc  func(name string) ([]byte, error)
	MkdirAllFunc  func(path string, perm fs.FileMode) error
	SymlinkFunc   func(oldname, newname string) error
	ReadlinkFunc  func(name string) (string, error)
	RemoveFunc    func(name string) error
	RemoveAllFunc func(path string) error

	Calls []string
}

// NewMockFS returns a MockFS over the OS filesystem.
func NewMockFS() *MockFS {
	return &MockFS{Base: filesystem.NewOS()}
}

func (m *MockFS) record(op, path string) {
	m.Calls = append(m.Calls, op+" "+path)
}

// Stat runs StatFunc or the base Stat.
func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	m.record("stat", name)
	if m.StatFunc != nil {
		return m.StatFunc(name)
	}
	return m.Base.Stat(name)
}

// Lstat runs LstatFunc or the base Lstat.
func (m *MockFS) Lstat(name string) (fs.FileInfo, error) {
	m.record("lstat", name)
	if m.LstatFunc != nil {
		return m.LstatFunc(name)
	}
	return m.Base.Lstat(name)
}

// ReadFile runs ReadFileFunc or the base ReadFile.
func (m *MockFS) ReadFile(name string) ([]byte, error) {
	m.record("readfile", name)
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(name)
	}
	return m.Base.ReadFile(name)
}

// MkdirAll runs MkdirAllFunc or the base MkdirAll.
func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	m.record("mkdirall", path)
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path, perm)
	}
	return m.Base.MkdirAll(path, perm)
}

// Symlink runs SymlinkFunc or the base Symlink.
func (m *MockFS) Symlink(oldname, newname string) error {
	m.record("symlink", newname)
	if m.SymlinkFunc != nil {
		return m.SymlinkFunc(oldname, newname)
	}
	return m.Base.Symlink(oldname, newname)
}

// Readlink runs ReadlinkFunc or the base Readlink.
func (m *MockFS) Readlink(name string) (string, error) {
	m.record("readlink", name)
	if m.ReadlinkFunc != nil {
		return m.ReadlinkFunc(name)
	}
	return m.Base.Readlink(name)
}

// Remove runs RemoveFunc or the base Remove.
func (m *MockFS) Remove(name string) error {
	m.record("remove", name)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return m.Base.Remove(name)
}

// RemoveAll runs RemoveAllFunc or the base RemoveAll.
func (m *MockFS) RemoveAll(path string) error {
	m.record("removeall", path)
	if m.RemoveAllFunc != nil {
		return m.RemoveAllFunc(path)
	}
	return m.Base.RemoveAll(path)
}

// Called reports whether op was recorded for path.
func (m *MockFS) Called(op, path string) bool {
	for _, c := range m.Calls {
		if c == op+" "+path {
			return true
		}
	}
	return false
}

var _ filesystem.FS = (*MockFS)(nil)
