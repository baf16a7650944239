// Package mapping holds the source to destination associations declared in
// the repository's mapping file.
//
// The file is a flat mapping of string keys to string values. Keys are
// sources relative to the repository root; values are destinations, which
// may use the ~ shorthand:
//
//	bashrc: ~/.bashrc
//	vim: ~/.vim
//
// Flow style ({bashrc: ~/.bashrc, vim: ~/.vim}) is equally valid. Files
// ending in .toml are read as TOML instead. Nested values are rejected.
//
// Expand iterates the underlying Go map, so the order of the returned pairs
// changes between runs. Callers that need a stable order use ExpandSorted.
package mapping
