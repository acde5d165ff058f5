// Package skills implements store inspection commands: listing the
// canonical bundles and showing a single bundle's descriptor.
package skills

import (
	"github.com/arthur-debert/dotsync/pkg/bundles"
	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the skills commands.
type Options struct {
	// SourceRoot is the repo holding the canonical store. Empty means
	// discovery.
	SourceRoot string
	// ConfigFile, when set, is loaded instead of the discovered one.
	ConfigFile string
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
}

// ListSkills returns the store's bundles in name order, descriptors
// parsed.
func ListSkills(opts Options) ([]bundles.Bundle, error) {
	logger := logging.GetLogger("commands.skills")

	rt, err := internal.ResolveRuntime(internal.RuntimeOptions{
		SourceRoot: opts.SourceRoot,
		ConfigFile: opts.ConfigFile,
		FileSystem: opts.FileSystem,
	})
	if err != nil {
		return nil, err
	}

	list, err := bundles.List(rt.FS, rt.Store())
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("bundles", len(list)).Str("store", rt.Store()).Msg("Listed bundles")
	return list, nil
}

// ShowSkill returns a single bundle by name.
func ShowSkill(opts Options, name string) (*bundles.Bundle, error) {
	rt, err := internal.ResolveRuntime(internal.RuntimeOptions{
		SourceRoot: opts.SourceRoot,
		ConfigFile: opts.ConfigFile,
		FileSystem: opts.FileSystem,
	})
	if err != nil {
		return nil, err
	}

	b, err := bundles.Get(rt.FS, rt.Store(), name)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
