package dotsync

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Clone a dotfiles repository and link its files into place"
	MsgVersionShort    = "Print build information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSorted  = "Link entries in source-key order instead of map order"
	MsgFlagDir     = "Repository directory (relative paths are under $HOME)"
	MsgFlagNoPull  = "Do not pull when the repository already exists"
	MsgFlagNoColor = "Disable coloured output"

	// Status messages
	MsgURLIgnored = "Repository already exists at %s, ignoring URL %s\n"

	// Error messages
	MsgErrURLRequired = "no repository at %s: a repository URL is required for the first run"
	MsgErrCloneRepo   = "failed to clone repository"
	MsgErrPullRepo    = "failed to update repository"
	MsgErrStatRepo    = "cannot access repository directory"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
