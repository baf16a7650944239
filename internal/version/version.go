package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/dotsync/dotsync/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/dotsync/dotsync/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/dotsync/dotsync/internal/version.Date={{.Date}}
)

// String returns the one-line build description printed by `dotsync version`.
func String() string {
	return fmt.Sprintf("dotsync %s (commit %s, built %s)", Version, Commit, Date)
}
