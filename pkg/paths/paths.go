package paths

import (
	"os"
	"path/filepath"

	"github.com/dotsync/dotsync/pkg/errors"
)

const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// DefaultRepositoryDir is where the dotfiles repository is cloned,
	// relative to the home directory.
	DefaultRepositoryDir = ".dotsync"

	// DefaultMappingFile is the mapping file name inside the repository root.
	DefaultMappingFile = ".dotsyncrc"
)

// Expander expands path specifiers against a fixed home directory.
// Resolving home once at startup keeps per-entry expansion infallible.
type Expander struct {
	home string
}

// NewExpander returns an Expander bound to home.
func NewExpander(home string) *Expander {
	return &Expander{home: home}
}

// Home returns the home directory the expander was built with.
func (e *Expander) Home() string {
	return e.home
}

// ExpandDestination replaces a leading "~" or "~/" with the home directory.
// Every non-empty result is cleaned, so a trailing separator never survives.
func (e *Expander) ExpandDestination(spec string) string {
	return expandHome(spec, e.home)
}

// ExpandDestination resolves the home directory and expands spec with it.
func ExpandDestination(spec string) (string, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return expandHome(spec, home), nil
}

// ExpandSource joins spec onto the repository root.
func ExpandSource(spec, root string) string {
	return filepath.Join(root, spec)
}

func expandHome(path, home string) string {
	if path == "" {
		return path
	}
	if path[0] != '~' {
		return filepath.Clean(path)
	}

	if len(path) == 1 {
		return home
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}

	// ~something (not the user's home)
	return filepath.Clean(path)
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	if err == nil {
		return "", errors.New(errors.ErrHomeNotFound, "unable to determine home directory")
	}
	return "", errors.Wrap(err, errors.ErrHomeNotFound, "unable to determine home directory")
}

// RepositoryRoot resolves the configured repository directory to an
// absolute path. Relative directories live under home; "~" is expanded.
func RepositoryRoot(home, dir string) (string, error) {
	if dir == "" {
		dir = DefaultRepositoryDir
	}

	dir = expandHome(dir, home)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(home, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", dir)
	}
	return abs, nil
}
