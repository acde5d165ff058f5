// Package providers implements the skill bundle synchronization
// command: provider bundles are imported into the canonical store, then
// the store is exposed back to each provider in its configured mode.
package providers

import (
	"github.com/arthur-debert/dotsync/pkg/clock"
	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the sync command.
type Options struct {
	// SourceRoot is the repo holding the canonical store. Empty means
	// discovery.
	SourceRoot string
	// ConfigFile, when set, is loaded instead of the discovered one.
	ConfigFile string
	// Names restricts the run to specific providers. Empty means every
	// configured provider, in name order.
	Names []string
	// Mode overrides the configured conflict mode when non-empty.
	Mode string
	// ImportOnly runs only the provider-to-store import pass.
	ImportOnly bool
	// ExposeOnly runs only the store-to-provider exposure pass.
	ExposeOnly bool
	// Apply executes the mutations; when false the run only plans.
	Apply bool
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
	// Clock allows injecting backup timestamps for testing.
	Clock clock.Clock
}

// SyncProviders runs the bundle cycle for the selected providers. The
// import pass always precedes exposure so the store is the source of
// truth within a single run. On error the partial report is returned
// alongside.
func SyncProviders(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.sync")
	logger.Debug().
		Strs("providers", opts.Names).
		Bool("apply", opts.Apply).
		Msg("Executing sync command")

	if opts.ImportOnly && opts.ExposeOnly {
		return nil, errors.New(errors.ErrInvalidInput, "import-only and expose-only are mutually exclusive")
	}

	overrides := map[string]interface{}{}
	if opts.Mode != "" {
		overrides["link.mode"] = opts.Mode
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

	providers, err := rt.Providers(opts.Names)
	if err != nil {
		return nil, err
	}

	syncer, err := rt.Syncer(opts.Apply)
	if err != nil {
		return nil, err
	}

	store := rt.Store()
	for _, p := range providers {
		if err := syncer.SyncProvider(p, store, !opts.ExposeOnly, !opts.ImportOnly); err != nil {
			logger.Error().Err(err).Str("provider", p.Name).Msg("Provider sync failed")
			return syncer.Report(), err
		}
	}

	report := syncer.Report()
	logger.Info().
		Int("providers", len(providers)).
		Int("actions", len(report.Actions)).
		Bool("apply", opts.Apply).
		Msg("Sync complete")
	return report, nil
}
