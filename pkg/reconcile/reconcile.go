package reconcile

import (
	"os"
	"path/filepath"

	"github.com/dotsync/dotsync/pkg/errors"
	"github.com/dotsync/dotsync/pkg/filesystem"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/rs/zerolog"
)

// State is what occupies a destination path.
type State int

const (
	// Absent means nothing exists at the path.
	Absent State = iota
	// Occupied means a regular file, directory or other non-link object exists.
	Occupied
	// Link means a symbolic link exists, whether or not its target does.
	Link
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Occupied:
		return "occupied"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// LinkKind is the type of link created for a source.
type LinkKind int

const (
	// FileLink points at a regular file.
	FileLink LinkKind = iota
	// DirectoryLink points at a directory.
	DirectoryLink
)

func (k LinkKind) String() string {
	if k == DirectoryLink {
		return "directory"
	}
	return "file"
}

// Outcome describes a successful reconciliation.
type Outcome struct {
	Source      string
	Destination string
	// Previous is what the destination held before it was cleared.
	Previous State
	Kind     LinkKind
}

// Reconciler links destinations to sources through an FS.
type Reconciler struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// New creates a Reconciler operating on fsys.
func New(fsys filesystem.FS) *Reconciler {
	return &Reconciler{
		fs:     fsys,
		logger: logging.GetLogger("reconcile"),
	}
}

// Inspect reports the current state of path. It is never cached: every
// call queries the filesystem.
func (r *Reconciler) Inspect(path string) (State, error) {
	if _, err := r.fs.Readlink(path); err == nil {
		return Link, nil
	}

	if _, err := r.fs.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return Absent, nil
		}
		return Absent, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path).
			WithDetail("path", path)
	}
	return Occupied, nil
}

// Reconcile makes destination a symbolic link to source. On error the
// destination may already have been cleared; see the package documentation.
func (r *Reconciler) Reconcile(source, destination string) (Outcome, error) {
	// A trailing separator would make MkdirAll create the link path itself
	destination = filepath.Clean(destination)
	outcome := Outcome{Source: source, Destination: destination}

	previous, err := r.clear(destination)
	if err != nil {
		return outcome, err
	}
	outcome.Previous = previous

	info, err := r.fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return outcome, errors.Newf(errors.ErrSourceMissing, "source %s does not exist", source).
				WithDetail("source", source).
				WithDetail("destination", destination)
		}
		return outcome, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect source %s", source).
			WithDetail("source", source)
	}

	switch {
	case info.Mode().IsRegular():
		outcome.Kind = FileLink
	case info.IsDir():
		outcome.Kind = DirectoryLink
	default:
		return outcome, errors.Newf(errors.ErrInvalidPath, "source %s is neither a file nor a directory", source).
			WithDetail("path", source).
			WithDetail("mode", info.Mode().String())
	}

	if err := r.link(source, destination); err != nil {
		return outcome, err
	}

	r.logger.Info().
		Str("source", source).
		Str("destination", destination).
		Str("kind", outcome.Kind.String()).
		Str("previous", previous.String()).
		Msg("Linked")
	return outcome, nil
}

// clear empties the destination path and returns what was there.
func (r *Reconciler) clear(destination string) (State, error) {
	state, err := r.Inspect(destination)
	if err != nil {
		return state, err
	}

	switch state {
	case Link:
		// Remove unlinks the entry itself and never follows it
		if err := r.fs.Remove(destination); err != nil {
			return state, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove link %s", destination).
				WithDetail("path", destination)
		}
		r.logger.Debug().Str("path", destination).Msg("Removed existing link")
	case Occupied:
		if err := r.delete(destination); err != nil {
			return state, err
		}
	}
	return state, nil
}

// delete removes a regular file or a directory tree. Exactly one of the two
// must hold for the path.
func (r *Reconciler) delete(path string) error {
	info, err := r.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrInvalidPath, "%s disappeared before it could be removed", path).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path).
			WithDetail("path", path)
	}

	isFile := info.Mode().IsRegular()
	isDir := info.IsDir()

	switch {
	case isFile && !isDir:
		if err := r.fs.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove file %s", path).
				WithDetail("path", path)
		}
		r.logger.Debug().Str("path", path).Msg("Removed existing file")
	case isDir && !isFile:
		if err := r.fs.RemoveAll(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove directory %s", path).
				WithDetail("path", path)
		}
		r.logger.Debug().Str("path", path).Msg("Removed existing directory")
	default:
		return errors.Newf(errors.ErrInvalidPath, "%s is neither a file nor a directory", path).
			WithDetail("path", path).
			WithDetail("mode", info.Mode().String())
	}
	return nil
}

// link creates the destination's parent directories and the link itself.
// os.Symlink picks the link type from the target on platforms that
// distinguish file and directory links, so both kinds share one call.
func (r *Reconciler) link(source, destination string) error {
	parent := filepath.Dir(destination)
	if err := r.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent directory %s", parent).
			WithDetail("path", parent)
	}

	if err := r.fs.Symlink(source, destination); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s to %s", destination, source).
			WithDetail("source", source).
			WithDetail("destination", destination)
	}
	return nil
}
