// Package status implements the read-only inspection command.
//
// Status answers two questions without touching the filesystem: what is
// already in place, and what would a full run change? It is the plan
// side of the engine end to end: every dotfile link and every provider
// cycle is evaluated with mutations disabled, so entries already in
// their desired state report noop and everything else reports the
// mutation a real run would perform.
package status

import (
	"github.com/arthur-debert/dotsync/pkg/clock"
	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the status command.
type Options struct {
	// SourceRoot is the tree to inspect. Empty means discovery.
	SourceRoot string
	// ConfigFile, when set, is loaded instead of the discovered one.
	ConfigFile string
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
	// Clock allows injecting backup timestamps for testing.
	Clock clock.Clock
}

// Status plans a full link plus provider sync run and returns the
// report. On error the partial report is returned alongside.
func Status(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.status")
	logger.Debug().Str("source", opts.SourceRoot).Msg("Executing status command")

	rt, err := internal.ResolveRuntime(internal.RuntimeOptions{
		SourceRoot: opts.SourceRoot,
		ConfigFile: opts.ConfigFile,
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

	syncer, err := rt.Syncer(false)
	if err != nil {
		return nil, err
	}

	if rt.Config.Link.TopLevel {
		err = syncer.LinkTopLevel(rt.SourceRoot, dest)
	} else {
		err = syncer.LinkTree(rt.SourceRoot, dest)
	}
	if err != nil {
		return syncer.Report(), err
	}

	providers, err := rt.Providers(nil)
	if err != nil {
		return syncer.Report(), err
	}

	store := rt.Store()
	for _, p := range providers {
		if err := syncer.SyncProvider(p, store, true, true); err != nil {
			return syncer.Report(), err
		}
	}

	report := syncer.Report()
	logger.Info().Int("actions", len(report.Actions)).Msg("Status complete")
	return report, nil
}
