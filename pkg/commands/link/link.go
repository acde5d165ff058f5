// Package link implements the dotfile linking command.
package link

import (
	"github.com/arthur-debert/dotsync/pkg/clock"
	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the link command.
type Options struct {
	// SourceRoot is the tree to mirror. Empty means discovery:
	// DOTSYNC_ROOT, then the git root, then the working directory.
	SourceRoot string
	// ConfigFile, when set, is loaded instead of the discovered one.
	ConfigFile string
	// Dest overrides the configured destination root when non-empty.
	Dest string
	// Mode overrides the configured conflict mode when non-empty.
	Mode string
	// TopLevel links top-level entries whole instead of walking into
	// directories.
	TopLevel bool
	// Apply executes the mutations; when false the run only plans.
	Apply bool
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
	// Clock allows injecting backup timestamps for testing.
	Clock clock.Clock
}

// LinkDotfiles mirrors the source tree into the destination root and
// returns the action report. On error the partial report is returned
// alongside, holding everything decided before the stop.
func LinkDotfiles(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.link")
	logger.Debug().
		Str("source", opts.SourceRoot).
		Bool("apply", opts.Apply).
		Msg("Executing link command")

	overrides := map[string]interface{}{}
	if opts.Dest != "" {
		overrides["link.dest"] = opts.Dest
	}
	if opts.Mode != "" {
		overrides["link.mode"] = opts.Mode
	}
	if opts.TopLevel {
		overrides["link.top_level"] = true
	}

	rt, err := internal.ResolveRuntime(internal.RuntimeOptions{
		SourceRoot: opts.SourceRoot,
		ConfigFile: opts.ConfigFile,
		Overrides:  overrides,
		FileSystem: opts.FileSystem,
		Clock:      opts.Clock,
	})
	if err != nil {
		return nil, err
	}

	dest, err := rt.Dest()
	if err != nil {
		return nil, err
	}

	syncer, err := rt.Syncer(opts.Apply)
	if err != nil {
		return nil, err
	}

	if rt.Config.Link.TopLevel {
		err = syncer.LinkTopLevel(rt.SourceRoot, dest)
	} else {
		err = syncer.LinkTree(rt.SourceRoot, dest)
	}

	report := syncer.Report()
	if err != nil {
		logger.Error().Err(err).Msg("Link failed")
		return report, err
	}

	logger.Info().
		Int("actions", len(report.Actions)).
		Bool("apply", opts.Apply).
		Msg("Link complete")
	return report, nil
}
