package dotsync

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotsync/dotsync/pkg/config"
	"github.com/dotsync/dotsync/pkg/errors"
	"github.com/dotsync/dotsync/pkg/reconcile"
	"github.com/dotsync/dotsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider stands in for git. Clone materialises files into the
// destination the way a real clone of the upstream would.
type fakeProvider struct {
	files map[string]string
	err   error

	clones []string
	pulls  []string
}

func (p *fakeProvider) Clone(ctx context.Context, url, destination string) error {
	p.clones = append(p.clones, url+" "+destination)
	if p.err != nil {
		return p.err
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return err
	}
	for name, content := range p.files {
		path := filepath.Join(destination, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (p *fakeProvider) Pull(ctx context.Context, path string) error {
	p.pulls = append(p.pulls, path)
	return p.err
}

// setupEnv isolates HOME, the log file and the user config, and returns
// the home directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	testutil.RequireSymlinks(t)

	tmp := t.TempDir()
	home := testutil.CreateDir(t, tmp, "home")
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv(config.EnvConfigFile, filepath.Join(tmp, "no-config.toml"))
	return home
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func dotfiles() map[string]string {
	return map[string]string{
		".dotsyncrc":    "vim/vimrc: ~/.vimrc\nnvim: ~/.config/nvim\n",
		"vim/vimrc":     "set nocompatible",
		"nvim/init.lua": "-- init",
	}
}

func TestSync_FirstRunClones(t *testing.T) {
	home := setupEnv(t)
	provider := &fakeProvider{files: dotfiles()}

	result, err := Sync(context.Background(), SyncOptions{
		URL:      "https://example.com/dotfiles.git",
		Config:   defaultConfig(t),
		Provider: provider,
	})
	require.NoError(t, err)

	root := filepath.Join(home, ".dotsync")
	assert.Equal(t, []string{"https://example.com/dotfiles.git " + root}, provider.clones)
	assert.Empty(t, provider.pulls)
	assert.True(t, result.Cloned)
	assert.False(t, result.Pulled)
	assert.Equal(t, root, result.Root)
	assert.Equal(t, home, result.Home)
	assert.Len(t, result.Outcomes, 2)

	testutil.AssertSymlink(t, filepath.Join(home, ".vimrc"), filepath.Join(root, "vim", "vimrc"))
	testutil.AssertSymlink(t, filepath.Join(home, ".config", "nvim"), filepath.Join(root, "nvim"))
}

func TestSync_NilConfigLoadsDefaults(t *testing.T) {
	home := setupEnv(t)
	provider := &fakeProvider{files: dotfiles()}

	result, err := Sync(context.Background(), SyncOptions{
		URL:      "https://example.com/dotfiles.git",
		Provider: provider,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".dotsync"), result.Root)
	assert.True(t, result.Cloned)
	assert.Len(t, result.Outcomes, 2)
	testutil.AssertSymlink(t, filepath.Join(home, ".vimrc"), filepath.Join(result.Root, "vim", "vimrc"))
}

func TestSync_NilConfigLoadError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", testutil.CreateDir(t, tmp, "home"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv(config.EnvConfigFile, testutil.CreateFile(t, tmp, "broken.toml", "[git\nbinary = "))
	provider := &fakeProvider{files: dotfiles()}

	result, err := Sync(context.Background(), SyncOptions{
		URL:      "https://example.com/dotfiles.git",
		Provider: provider,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	assert.Nil(t, result)
	assert.Empty(t, provider.clones)
}

func TestSync_FirstRunRequiresURL(t *testing.T) {
	setupEnv(t)
	provider := &fakeProvider{}

	result, err := Sync(context.Background(), SyncOptions{
		Config:   defaultConfig(t),
		Provider: provider,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
	assert.Empty(t, provider.clones)
	assert.Empty(t, result.Outcomes)
}

func TestSync_ExistingRepositoryPulls(t *testing.T) {
	home := setupEnv(t)
	root := filepath.Join(home, ".dotsync")
	for name, content := range dotfiles() {
		testutil.CreateFile(t, root, name, content)
	}
	testutil.CreateFile(t, home, ".vimrc", "local edits")

	provider := &fakeProvider{}
	result, err := Sync(context.Background(), SyncOptions{
		URL:      "https://example.com/ignored.git",
		Config:   defaultConfig(t),
		Provider: provider,
	})
	require.NoError(t, err)

	assert.Empty(t, provider.clones, "URL is ignored once the repository exists")
	assert.Equal(t, []string{root}, provider.pulls)
	assert.True(t, result.Pulled)
	testutil.AssertSymlink(t, filepath.Join(home, ".vimrc"), filepath.Join(root, "vim", "vimrc"))

	previous := map[string]reconcile.State{}
	for _, o := range result.Outcomes {
		previous[o.Destination] = o.Previous
	}
	assert.Equal(t, reconcile.Occupied, previous[filepath.Join(home, ".vimrc")])
	assert.Equal(t, reconcile.Absent, previous[filepath.Join(home, ".config", "nvim")])
}

func TestSync_NoPull(t *testing.T) {
	home := setupEnv(t)
	root := filepath.Join(home, ".dotsync")
	for name, content := range dotfiles() {
		testutil.CreateFile(t, root, name, content)
	}

	provider := &fakeProvider{}
	result, err := Sync(context.Background(), SyncOptions{
		NoPull:   true,
		Config:   defaultConfig(t),
		Provider: provider,
	})
	require.NoError(t, err)
	assert.Empty(t, provider.pulls)
	assert.False(t, result.Pulled)
	assert.Len(t, result.Outcomes, 2)
}

func TestSync_CustomDirectoryAndMappingFile(t *testing.T) {
	home := setupEnv(t)
	root := filepath.Join(home, "src", "dotfiles")
	testutil.CreateFile(t, root, "links.toml", `"gitconfig" = "~/.gitconfig"`)
	testutil.CreateFile(t, root, "gitconfig", "[user]")

	cfg := defaultConfig(t)
	cfg.Repository.Dir = "src/dotfiles"
	cfg.Mapping.File = "links.toml"

	provider := &fakeProvider{}
	result, err := Sync(context.Background(), SyncOptions{Config: cfg, Provider: provider})
	require.NoError(t, err)

	assert.Equal(t, []string{root}, provider.pulls)
	assert.Len(t, result.Outcomes, 1)
	testutil.AssertSymlink(t, filepath.Join(home, ".gitconfig"), filepath.Join(root, "gitconfig"))
}

func TestSync_ProviderFailure(t *testing.T) {
	t.Run("clone", func(t *testing.T) {
		setupEnv(t)
		gitErr := errors.New(errors.ErrProvider, "git command failed").
			WithDetail("stderr", "fatal: repository not found").
			WithDetail("exit_code", 128)
		provider := &fakeProvider{err: gitErr}

		_, err := Sync(context.Background(), SyncOptions{
			URL:      "https://example.com/missing.git",
			Config:   defaultConfig(t),
			Provider: provider,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrProvider, errors.GetErrorCode(err))
		assert.Contains(t, err.Error(), MsgErrCloneRepo)

		details := errors.AllDetails(err)
		assert.Equal(t, "https://example.com/missing.git", details["url"])
		assert.Equal(t, "fatal: repository not found", details["stderr"])
		assert.Equal(t, 128, details["exit_code"])
	})

	t.Run("pull", func(t *testing.T) {
		home := setupEnv(t)
		testutil.CreateDir(t, home, ".dotsync")
		provider := &fakeProvider{err: stderrors.New("network down")}

		result, err := Sync(context.Background(), SyncOptions{
			Config:   defaultConfig(t),
			Provider: provider,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrProvider, errors.GetErrorCode(err))
		assert.Contains(t, err.Error(), "network down")
		assert.Empty(t, result.Outcomes)
	})
}

func TestSync_MissingMappingFile(t *testing.T) {
	home := setupEnv(t)
	testutil.CreateDir(t, home, ".dotsync")

	_, err := Sync(context.Background(), SyncOptions{
		Config:   defaultConfig(t),
		Provider: &fakeProvider{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestSync_InvalidMappingFile(t *testing.T) {
	home := setupEnv(t)
	root := testutil.CreateDir(t, home, ".dotsync")
	testutil.CreateFile(t, root, ".dotsyncrc", "- a\n- b\n")

	_, err := Sync(context.Background(), SyncOptions{
		Config:   defaultConfig(t),
		Provider: &fakeProvider{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestSync_StopsAtFirstFailure(t *testing.T) {
	home := setupEnv(t)
	root := filepath.Join(home, ".dotsync")
	testutil.CreateFile(t, root, ".dotsyncrc", "a: ~/.a\nb: ~/.b\nc: ~/.c\n")
	testutil.CreateFile(t, root, "a", "a")
	testutil.CreateFile(t, root, "c", "c")
	testutil.CreateFile(t, home, ".b", "existing b")

	cfg := defaultConfig(t)
	cfg.Mapping.Sorted = true

	result, err := Sync(context.Background(), SyncOptions{
		Config:   cfg,
		Provider: &fakeProvider{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceMissing))

	require.Len(t, result.Outcomes, 1)
	testutil.AssertSymlink(t, filepath.Join(home, ".a"), filepath.Join(root, "a"))
	testutil.AssertAbsent(t, filepath.Join(home, ".b"))
	testutil.AssertAbsent(t, filepath.Join(home, ".c"))
}

func TestSync_RepositoryStatError(t *testing.T) {
	setupEnv(t)
	mockFS := testutil.NewMockFS()
	mockFS.StatFunc = func(name string) (fs.FileInfo, error) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
	}

	provider := &fakeProvider{}
	_, err := Sync(context.Background(), SyncOptions{
		URL:      "https://example.com/dotfiles.git",
		Config:   defaultConfig(t),
		Provider: provider,
		FS:       mockFS,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Empty(t, provider.clones)
	assert.Empty(t, provider.pulls)
}

func TestSync_HomeNotFound(t *testing.T) {
	setupEnv(t)
	t.Setenv("HOME", "")

	_, err := Sync(context.Background(), SyncOptions{
		Config:   defaultConfig(t),
		Provider: &fakeProvider{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHomeNotFound))
}
