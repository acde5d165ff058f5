// Package internal resolves the execution environment the command
// implementations share: source root discovery, configuration loading,
// and construction of the engine with the effective settings.
package internal

import (
	"path/filepath"

	"github.com/arthur-debert/dotsync/pkg/clock"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/ignore"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/sync"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// RuntimeOptions carries what every command accepts: an optional source
// root, an optional explicit config file, flag overrides as dotted
// config keys, and the injectable filesystem and clock.
type RuntimeOptions struct {
	SourceRoot string
	ConfigFile string
	Overrides  map[string]interface{}
	FileSystem types.FS
	Clock      clock.Clock
}

// Runtime is the resolved execution environment: the source root, the
// effective configuration, and the filesystem/clock pair every engine
// call goes through.
type Runtime struct {
	SourceRoot string
	Config     *config.Config
	FS         types.FS
	Clock      clock.Clock
}

// ResolveRuntime discovers the source root, loads the configuration and
// fills in the default filesystem and clock.
func ResolveRuntime(opts RuntimeOptions) (*Runtime, error) {
	logger := logging.GetLogger("commands")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	root, usedCwd, err := paths.FindSourceRoot(opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	if usedCwd {
		logger.Warn().Str("root", root).Msg("No source root given, falling back to the current directory")
	}

	cfg, err := config.LoadConfiguration(config.LoadOptions{
		SourceRoot: root,
		ConfigFile: opts.ConfigFile,
		Overrides:  opts.Overrides,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("root", root).Msg("Resolved execution environment")

	return &Runtime{SourceRoot: root, Config: cfg, FS: fs, Clock: clk}, nil
}

// Store returns the canonical bundle store directory.
func (r *Runtime) Store() string {
	return filepath.Join(r.SourceRoot, r.Config.Skills.Dir)
}

// Dest resolves the dotfile link destination root. The shipped default
// ("~") defers to DEST_DIR when that is set, so deployment scripts can
// redirect a whole run without touching configuration.
func (r *Runtime) Dest() (string, error) {
	dest := r.Config.Link.Dest
	if dest == "" || dest == "~" {
		dest = paths.DefaultDest()
	}
	return paths.Normalize(dest)
}

// Policy parses the configured conflict mode.
func (r *Runtime) Policy() (types.Policy, error) {
	return types.ParsePolicy(r.Config.Link.Mode)
}

// Syncer builds the engine for this runtime. Apply false plans only.
func (r *Runtime) Syncer(apply bool) (*sync.Syncer, error) {
	policy, err := r.Policy()
	if err != nil {
		return nil, err
	}

	return sync.New(sync.Options{
		FS:                 r.FS,
		Clock:              r.Clock,
		Policy:             policy,
		Apply:              apply,
		Filter:             ignore.New(r.Config.Link.Ignore, r.Config.Link.IgnorePrefixes),
		SkillIgnore:        r.Config.Skills.Ignore,
		SkillContentIgnore: r.Config.Skills.ContentIgnore,
	}), nil
}

// Providers resolves the named providers (all configured ones, in name
// order, when names is empty) into engine form: roots normalized, modes
// parsed, extra links made absolute against the source and provider
// roots.
func (r *Runtime) Providers(names []string) ([]sync.Provider, error) {
	if len(names) == 0 {
		names = r.Config.ProviderNames()
	}

	out := make([]sync.Provider, 0, len(names))
	for _, name := range names {
		pc, ok := r.Config.Providers[name]
		if !ok {
			return nil, errors.Newf(errors.ErrConfig, "provider not configured: %s", name)
		}
		if pc.Root == "" {
			return nil, errors.Newf(errors.ErrConfig, "provider %s has no root directory configured", name)
		}

		mode, err := sync.ParseProviderMode(pc.Mode)
		if err != nil {
			return nil, err
		}

		root, err := paths.Normalize(pc.Root)
		if err != nil {
			return nil, err
		}

		links := make([]sync.ExtraLink, 0, len(pc.Links))
		for _, l := range pc.Links {
			links = append(links, sync.ExtraLink{
				Source: filepath.Join(r.SourceRoot, l.Source),
				Target: filepath.Join(root, l.Target),
			})
		}

		out = append(out, sync.Provider{
			Name:  name,
			Root:  root,
			Mode:  mode,
			Links: links,
			Rules: sync.ImportRules{
				Lenient:      pc.ImportLenient,
				SkipSuffixes: pc.ImportSkipSuffixes,
			},
		})
	}
	return out, nil
}
