// Package git obtains and updates the dotfiles repository by running the
// git command line tool.
package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	serrors "github.com/dotsync/dotsync/pkg/errors"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultBinary is the git executable looked up on PATH.
const DefaultBinary = "git"

// Provider obtains and updates a repository clone.
type Provider interface {
	Clone(ctx context.Context, url, destination string) error
	Pull(ctx context.Context, path string) error
}

// Options configures a Client.
type Options struct {
	// Binary is the git executable, DefaultBinary when empty
	Binary string
	// Timeout bounds each git invocation; zero means no limit
	Timeout time.Duration
}

// Client is a Provider backed by the git CLI.
type Client struct {
	binary  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient creates a git client
func NewClient(opts Options) *Client {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		binary:  binary,
		timeout: opts.Timeout,
		logger:  logging.GetLogger("git"),
	}
}

// Clone runs `git clone url destination`.
func (c *Client) Clone(ctx context.Context, url, destination string) error {
	c.logger.Info().Str("url", url).Str("destination", destination).Msg("Cloning repository")
	return c.run(ctx, "", "clone", url, destination)
}

// Pull runs `git pull` inside path.
func (c *Client) Pull(ctx context.Context, path string) error {
	c.logger.Info().Str("path", path).Msg("Pulling repository")
	return c.run(ctx, path, "pull")
}

func (c *Client) run(ctx context.Context, dir string, args ...string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logging.LogCommand(c.binary, args)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = dir
	// never block on a credential prompt
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if stdout.Len() > 0 {
		c.logger.Debug().Str("output", stdout.String()).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		c.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}

	if err == nil {
		c.logger.Debug().
			Strs("args", args).
			Dur("duration", time.Since(start)).
			Msg("Command completed")
		return nil
	}

	details := map[string]interface{}{
		"command": c.binary,
		"args":    args,
		"stdout":  stdout.String(),
		"stderr":  stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		details["exit_code"] = exitErr.ExitCode()
		return serrors.Wrapf(err, serrors.ErrProvider, "%s %s exited with code %d",
			c.binary, args[0], exitErr.ExitCode()).
			WithDetails(details)
	}

	return serrors.Wrapf(err, serrors.ErrProvider, "failed to run %s %s", c.binary, args[0]).
		WithDetails(details)
}

var _ Provider = (*Client)(nil)
