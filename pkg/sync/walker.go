package sync

import (
	"path/filepath"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// LinkTree mirrors sourceDir into destDir recursively. Real source
// directories are recreated at the destination and their entries
// linked; files and symlinks are leaves handed to Link. A source
// subdirectory that the resolved destination root lives inside is
// skipped so the mirror never folds into itself.
func (s *Syncer) LinkTree(sourceDir, destDir string) error {
	if err := s.checkRoots(sourceDir, destDir); err != nil {
		return err
	}

	destResolved, err := paths.Resolve(s.fs, destDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve destination %s", destDir)
	}

	s.report.Add(types.Action{Op: types.OpRoot, Path: sourceDir, Target: destDir})
	s.logger.Info().Str("source", sourceDir).Str("dest", destDir).Msg("linking tree")

	return s.walk(sourceDir, destDir, destResolved, "")
}

// LinkTopLevel links only the immediate entries of sourceDir into
// destDir. Directories are not traversed; each becomes a single
// symlink.
func (s *Syncer) LinkTopLevel(sourceDir, destDir string) error {
	if err := s.checkRoots(sourceDir, destDir); err != nil {
		return err
	}

	s.report.Add(types.Action{Op: types.OpRoot, Path: sourceDir, Target: destDir})
	s.logger.Info().Str("source", sourceDir).Str("dest", destDir).Msg("linking top-level entries")

	entries, err := s.fs.ReadDir(sourceDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", sourceDir)
	}

	for _, de := range entries {
		name := de.Name()
		if s.filter.ShouldIgnore(name) {
			s.report.Add(types.Action{Op: types.OpIgnore, Path: name})
			s.logger.Debug().Str("name", name).Msg("ignoring entry")
			continue
		}
		if err := s.Link(filepath.Join(sourceDir, name), filepath.Join(destDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// checkRoots validates the run's root directories. A missing source or
// a destination that resolves to the source itself is a configuration
// error, not a per-item conflict.
func (s *Syncer) checkRoots(sourceDir, destDir string) error {
	info, err := s.fs.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrConfig, "source directory not found: %s", sourceDir)
	}

	srcResolved, err := paths.Resolve(s.fs, sourceDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve source %s", sourceDir)
	}
	destResolved, err := paths.Resolve(s.fs, destDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve destination %s", destDir)
	}
	if srcResolved == destResolved {
		return errors.Newf(errors.ErrConfig, "source and destination are the same path: %s", srcResolved)
	}
	return nil
}

func (s *Syncer) walk(currentSrc, destRoot, destRootResolved, relPrefix string) error {
	entries, err := s.fs.ReadDir(currentSrc)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", currentSrc)
	}

	for _, de := range entries {
		name := de.Name()
		rel := filepath.Join(relPrefix, name)

		if s.filter.ShouldIgnore(name) {
			s.report.Add(types.Action{Op: types.OpIgnore, Path: rel})
			s.logger.Debug().Str("path", rel).Msg("ignoring entry")
			continue
		}

		srcPath := filepath.Join(currentSrc, name)
		destPath := filepath.Join(destRoot, rel)

		// Symlinked directories are leaves; only real directories recurse.
		if de.IsDir() {
			srcResolved, err := paths.Resolve(s.fs, srcPath)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", srcPath)
			}
			if paths.IsWithin(destRootResolved, srcResolved) {
				s.report.Add(types.Action{Op: types.OpIgnore, Path: rel, Note: "(dest)"})
				s.logger.Debug().Str("path", rel).Msg("skipping subtree containing destination")
				continue
			}

			proceed, err := s.EnsureDir(destPath)
			if err != nil {
				return err
			}
			if proceed {
				if err := s.walk(srcPath, destRoot, destRootResolved, rel); err != nil {
					return err
				}
			}
			continue
		}

		if err := s.Link(srcPath, destPath); err != nil {
			return err
		}
	}
	return nil
}
