package dotsync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dotsync/dotsync/pkg/config"
	"github.com/dotsync/dotsync/pkg/errors"
	"github.com/dotsync/dotsync/pkg/executor"
	"github.com/dotsync/dotsync/pkg/filesystem"
	"github.com/dotsync/dotsync/pkg/git"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/dotsync/dotsync/pkg/mapping"
	"github.com/dotsync/dotsync/pkg/paths"
	"github.com/dotsync/dotsync/pkg/reconcile"
)

// SyncOptions holds the per-invocation inputs of a sync run.
type SyncOptions struct {
	// URL is used only when the repository does not exist yet
	URL    string
	NoPull bool
	// Config is loaded from the environment when nil
	Config *config.Config
	// Provider defaults to a git client built from Config.Git
	Provider git.Provider
	FS       filesystem.FS
}

// SyncResult reports what a sync run did. It is returned alongside an
// error when reconciliation stopped part way.
type SyncResult struct {
	Home     string
	Root     string
	Cloned   bool
	Pulled   bool
	Outcomes []reconcile.Outcome
}

// Sync obtains or updates the repository, loads its mapping and links
// every entry.
func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	log := logging.GetLogger("dotsync")

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	provider := opts.Provider
	if provider == nil {
		provider = git.NewClient(git.Options{
			Binary:  cfg.Git.Binary,
			Timeout: cfg.Git.Timeout,
		})
	}

	home, err := paths.GetHomeDirectory()
	if err != nil {
		return nil, err
	}
	root, err := paths.RepositoryRoot(home, cfg.Repository.Dir)
	if err != nil {
		return nil, err
	}
	result := &SyncResult{Home: home, Root: root}

	_, err = fsys.Stat(root)
	switch {
	case err == nil:
		if opts.URL != "" {
			log.Info().Str("root", root).Str("url", opts.URL).Msg("Repository exists, URL ignored")
		}
		if opts.NoPull {
			log.Info().Str("root", root).Msg("Skipping pull")
			break
		}
		if err := provider.Pull(ctx, root); err != nil {
			return result, errors.Wrap(err, errors.ErrProvider, MsgErrPullRepo).
				WithDetail("path", root)
		}
		result.Pulled = true
	case os.IsNotExist(err):
		if opts.URL == "" {
			return result, errors.Newf(errors.ErrMissingArgument, MsgErrURLRequired, root)
		}
		if err := provider.Clone(ctx, opts.URL, root); err != nil {
			return result, errors.Wrap(err, errors.ErrProvider, MsgErrCloneRepo).
				WithDetail("url", opts.URL).
				WithDetail("path", root)
		}
		result.Cloned = true
	default:
		return result, errors.Wrap(err, errors.ErrFileAccess, MsgErrStatRepo).
			WithDetail("path", root)
	}

	m, err := mapping.Load(fsys, filepath.Join(root, cfg.Mapping.File))
	if err != nil {
		return result, err
	}

	exec := executor.New(executor.Options{
		Sorted: cfg.Mapping.Sorted,
		FS:     fsys,
	})
	result.Outcomes, err = exec.Run(m, root, paths.NewExpander(home))
	return result, err
}
