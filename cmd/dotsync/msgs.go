package dotsync

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep dotfiles and agent skills in sync from one repository"
	MsgLinkShort       = "Mirror the source tree into the destination as symlinks"
	MsgSyncShort       = "Import provider skill bundles, then expose the store back"
	MsgStatusShort     = "Report what is in place and what a run would change"
	MsgSkillsShort     = "Inspect the canonical skill store"
	MsgSkillsListShort = "List store bundles"
	MsgSkillsShowShort = "Show a bundle descriptor"
	MsgGenConfigShort  = "Print or write configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice  = "Dry-run only. Re-run with --apply to make changes."
	MsgConfigWritten = "Wrote %s"
	MsgConfigExists  = "Config file already exists, nothing written."

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagConfig     = "Config file (default: .dotsync.toml in the source root)"
	MsgFlagDest       = "Destination root for links (default: configured link.dest)"
	MsgFlagMode       = "Conflict mode: skip, backup, replace or fail"
	MsgFlagTopLevel   = "Link only top-level entries, no recursion"
	MsgFlagApply      = "Execute changes (default: plan only)"
	MsgFlagImportOnly = "Import bundles into the store without exposing it"
	MsgFlagExposeOnly = "Expose the store without importing first"
	MsgFlagEffective  = "Print the merged configuration actually in effect"
	MsgFlagWrite      = "Write the defaults to .dotsync.toml at the source root"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimSpace(msgLinkExampleRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimSpace(msgSyncExampleRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimSpace(msgStatusExampleRaw)

	//go:embed msgs/skills-long.txt
	msgSkillsLongRaw string
	MsgSkillsLong    = strings.TrimSpace(msgSkillsLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimSpace(msgGenConfigExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
