package mapping

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/dotsync/dotsync/pkg/errors"
	"github.com/dotsync/dotsync/pkg/filesystem"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/dotsync/dotsync/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Pair is one expanded mapping entry: an absolute source inside the
// repository and the destination where the link to it belongs.
type Pair struct {
	Source      string
	Destination string
}

// Mapping is a parsed mapping file.
type Mapping struct {
	paths map[string]string
}

// New builds a Mapping from already parsed entries.
func New(entries map[string]string) *Mapping {
	m := &Mapping{paths: make(map[string]string, len(entries))}
	for src, dst := range entries {
		m.paths[src] = dst
	}
	return m
}

// Parse reads YAML text as a flat string to string mapping. Any structural
// problem fails the whole parse; no partial mapping is returned.
func Parse(text string) (*Mapping, error) {
	var entries map[string]string
	if err := yaml.Unmarshal([]byte(text), &entries); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse mapping as YAML")
	}
	return fromEntries(entries)
}

// ParseTOML reads TOML text as a flat string to string mapping.
func ParseTOML(text string) (*Mapping, error) {
	var entries map[string]string
	if err := toml.Unmarshal([]byte(text), &entries); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse mapping as TOML")
	}
	return fromEntries(entries)
}

func fromEntries(entries map[string]string) (*Mapping, error) {
	for src, dst := range entries {
		if err := paths.ValidateSpec(src); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid source %q", src)
		}
		if err := paths.ValidateSpec(dst); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid destination for source %q", src)
		}
	}
	return New(entries), nil
}

// Load reads and parses the mapping file at path. The parser is chosen by
// extension: .toml files are TOML, everything else is YAML.
func Load(fsys filesystem.FS, path string) (*Mapping, error) {
	logger := logging.GetLogger("mapping")

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read mapping file %s", path).
			WithDetail("path", path)
	}

	var m *Mapping
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		m, err = ParseTOML(string(data))
	} else {
		m, err = Parse(string(data))
	}
	if err != nil {
		if syncErr, ok := err.(*errors.SyncError); ok {
			syncErr.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("entries", m.Len()).
		Msg("Mapping loaded")
	return m, nil
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.paths)
}

// Entries returns a copy of the raw source to destination entries.
func (m *Mapping) Entries() map[string]string {
	out := make(map[string]string, len(m.paths))
	for src, dst := range m.paths {
		out[src] = dst
	}
	return out
}

// Expand resolves every entry against the repository root and the
// expander's home directory. The order of the result is not defined.
func (m *Mapping) Expand(root string, x *paths.Expander) []Pair {
	pairs := make([]Pair, 0, len(m.paths))
	for src, dst := range m.paths {
		pairs = append(pairs, Pair{
			Source:      paths.ExpandSource(src, root),
			Destination: x.ExpandDestination(dst),
		})
	}
	return pairs
}

// ExpandSorted is Expand with pairs ordered by source key.
func (m *Mapping) ExpandSorted(root string, x *paths.Expander) []Pair {
	keys := make([]string, 0, len(m.paths))
	for src := range m.paths {
		keys = append(keys, src)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, src := range keys {
		pairs = append(pairs, Pair{
			Source:      paths.ExpandSource(src, root),
			Destination: x.ExpandDestination(m.paths[src]),
		})
	}
	return pairs
}
