package sync

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// ImportRules relax the import contract for providers that litter
// their skills directory. The zero value is the strict contract:
// every non-ignored entry must be a bundle directory.
type ImportRules struct {
	// Lenient skips stray non-directory entries instead of failing.
	Lenient bool
	// SkipSuffixes lists name suffixes left alone entirely, e.g.
	// packaged ".skill" archives the provider manages itself.
	SkipSuffixes []string
}

// ImportBundles moves bundle directories from a provider skills
// directory into the canonical store. After an applied run the store
// holds the only non-symlink copy of each imported bundle. Entries
// already linked to the store or already present in it are noops;
// foreign symlinks and kind collisions abort the run rather than
// guess at ownership.
func (s *Syncer) ImportBundles(providerSkills, store string, rules ImportRules) error {
	root, err := s.inspect(providerSkills)
	if err != nil {
		return err
	}
	if !root.Exists() {
		s.logger.Debug().Str("path", providerSkills).Msg("no provider skills directory, nothing to import")
		return nil
	}
	if root.IsSymlink() {
		target, terr := paths.Resolve(s.fs, providerSkills)
		expected, eerr := paths.Resolve(s.fs, store)
		if terr == nil && eerr == nil && target == expected {
			s.report.Add(types.Action{Op: types.OpNoop, Path: providerSkills, Note: "already linked"})
			s.logger.Debug().Str("path", providerSkills).Msg("provider skills directory already linked to store")
			return nil
		}
		return errors.Newf(errors.ErrOwnership, "provider skills directory is a symlink with unexpected target: %s", providerSkills)
	}

	entries, err := s.fs.ReadDir(providerSkills)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", providerSkills)
	}

	for _, de := range entries {
		name := de.Name()
		if s.skillIgnored(name) {
			continue
		}
		if hasAnySuffix(name, rules.SkipSuffixes) {
			s.logger.Debug().Str("name", name).Msg("skipping packaged bundle")
			continue
		}

		entryPath := filepath.Join(providerSkills, name)
		destPath := filepath.Join(store, name)

		// Already linked back to the store means already imported;
		// any other symlink is ambiguous ownership.
		if de.Type()&fs.ModeSymlink != 0 {
			target, terr := paths.Resolve(s.fs, entryPath)
			expected, eerr := paths.Resolve(s.fs, destPath)
			if terr == nil && eerr == nil && target == expected {
				s.report.Add(types.Action{Op: types.OpNoop, Path: entryPath, Note: "already linked"})
				continue
			}
			return errors.Newf(errors.ErrOwnership, "bundle is a symlink with unexpected target: %s", entryPath)
		}

		if !de.IsDir() {
			if rules.Lenient {
				s.logger.Debug().Str("path", entryPath).Msg("skipping non-directory entry")
				continue
			}
			return errors.Newf(errors.ErrOwnership, "bundle entry is not a directory: %s", entryPath)
		}

		dest, err := s.inspect(destPath)
		if err != nil {
			return err
		}
		if dest.Exists() {
			if dest.IsDir() {
				s.report.Add(types.Action{Op: types.OpNoop, Path: destPath, Note: "already exists"})
				continue
			}
			return errors.Newf(errors.ErrOwnership, "bundle already exists in store with a different kind: %s", destPath)
		}

		s.report.Add(types.Action{Op: types.OpMove, Path: entryPath, Target: destPath})
		s.logger.Info().Str("from", entryPath).Str("to", destPath).Msg("importing bundle")
		if s.opts.Apply {
			if err := s.fs.Rename(entryPath, destPath); err != nil {
				return errors.Wrapf(err, errors.ErrFileMove, "failed to import %s", entryPath)
			}
		}
	}
	return nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
