// Package config loads dotsync's own settings (where the repository lives,
// which mapping file to read, how to run git).
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/dotsync/config.toml, or the
//     file named by DOTSYNC_CONFIG
//  3. DOTSYNC_ environment variables, where underscores become key
//     separators: DOTSYNC_GIT_BINARY sets git.binary
//
// The mapping file itself is not configuration; see pkg/mapping.
package config
