// Package genconfig implements configuration scaffolding: printing the
// commented defaults, rendering the effective merged configuration, and
// writing a starter config file to the source root.
package genconfig

import (
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options holds options for the genconfig command.
type Options struct {
	// SourceRoot is used for write mode and effective rendering. Empty
	// means discovery.
	SourceRoot string
	// ConfigFile, when set, is loaded instead of the discovered one.
	ConfigFile string
	// Effective renders the merged configuration (defaults, file,
	// environment) instead of the commented defaults.
	Effective bool
	// Write writes the defaults to .dotsync.toml at the source root.
	// An existing file is never overwritten.
	Write bool
	// FileSystem allows injecting a filesystem for testing.
	FileSystem types.FS
}

// Result is the command's output.
type Result struct {
	// Content is the rendered configuration, printed verbatim.
	Content string
	// FilesWritten lists config files created in write mode.
	FilesWritten []string
}

// GenConfig renders or writes configuration.
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	if opts.Effective {
		rt, err := internal.ResolveRuntime(internal.RuntimeOptions{
			SourceRoot: opts.SourceRoot,
			ConfigFile: opts.ConfigFile,
			FileSystem: opts.FileSystem,
		})
		if err != nil {
			return nil, err
		}

		data, err := toml.Marshal(rt.Config)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render effective configuration")
		}
		return &Result{Content: string(data)}, nil
	}

	content := config.DefaultTOML()
	result := &Result{Content: string(content)}

	if !opts.Write {
		logger.Debug().Msg("Outputting default config")
		return result, nil
	}

	rt, err := internal.ResolveRuntime(internal.RuntimeOptions{
		SourceRoot: opts.SourceRoot,
		ConfigFile: opts.ConfigFile,
		FileSystem: opts.FileSystem,
	})
	if err != nil {
		return nil, err
	}

	target := filepath.Join(rt.SourceRoot, paths.ConfigFileName)
	if _, err := rt.FS.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := rt.FS.WriteFile(target, content, 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Wrote config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
