package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	require.NotNil(t, fsys)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "bashrc")
	require.NoError(t, os.WriteFile(testFile, []byte("export EDITOR=vim"), 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "bashrc", info.Name())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=vim", string(content))

	subDir := filepath.Join(tmpDir, "vim", "colors")
	require.NoError(t, fsys.MkdirAll(subDir, 0755))

	require.NoError(t, fsys.Remove(testFile))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.RemoveAll(filepath.Join(tmpDir, "vim")))
	_, err = fsys.Stat(subDir)
	assert.True(t, os.IsNotExist(err))
}

func TestOSSymlinks(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()

	link := filepath.Join(tmpDir, "link")
	missing := filepath.Join(tmpDir, "missing")
	require.NoError(t, fsys.Symlink(missing, link))

	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, missing, target)

	// Stat follows the broken link, Lstat does not
	_, err = fsys.Stat(link)
	assert.True(t, os.IsNotExist(err))

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestOSRelativePaths(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, fsys.MkdirAll(filepath.Join("dotfiles", "vim"), 0755))
	require.NoError(t, fsys.Symlink(filepath.Join(tmpDir, "dotfiles", "vim"), ".vim"))

	target, err := fsys.Readlink(".vim")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "dotfiles", "vim"), target)

	info, err := os.Lstat(filepath.Join(tmpDir, ".vim"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	require.NoError(t, fsys.Remove(".vim"))
	require.NoError(t, fsys.RemoveAll("dotfiles"))
	_, err = os.Stat(filepath.Join(tmpDir, "dotfiles"))
	assert.True(t, os.IsNotExist(err))
}
