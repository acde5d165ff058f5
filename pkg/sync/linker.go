package sync

import (
	"path/filepath"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Link installs a symlink at dest pointing at source. An existing
// symlink that already resolves to the same place as source is the
// engine's idempotency anchor and reports a noop; anything else
// occupying dest goes through the conflict policy first. The created
// link targets the literal source path, not its resolved form.
func (s *Syncer) Link(source, dest string) error {
	entry, err := s.inspect(dest)
	if err != nil {
		return err
	}

	if entry.IsSymlink() {
		destTarget, derr := paths.Resolve(s.fs, dest)
		srcTarget, serr := paths.Resolve(s.fs, source)
		if derr == nil && serr == nil && destTarget == srcTarget {
			s.report.Add(types.Action{Op: types.OpNoop, Path: dest, Target: source})
			s.logger.Debug().Str("dest", dest).Str("source", source).Msg("already linked")
			return nil
		}
	}

	if entry.Exists() {
		proceed, err := s.resolveConflict(dest)
		if err != nil || !proceed {
			return err
		}
	}

	s.report.Add(types.Action{Op: types.OpLink, Path: dest, Target: source})
	s.logger.Info().Str("dest", dest).Str("source", source).Msg("creating symlink")
	if !s.opts.Apply {
		return nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", dest)
	}
	if err := s.fs.Symlink(source, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", dest)
	}
	return nil
}

// EnsureDir makes sure path is a real directory, sending whatever else
// occupies it through the conflict policy. It reports whether the
// caller may use the directory.
func (s *Syncer) EnsureDir(path string) (bool, error) {
	entry, err := s.inspect(path)
	if err != nil {
		return false, err
	}

	if entry.IsDir() {
		return true, nil
	}

	if entry.Exists() {
		proceed, err := s.resolveConflict(path)
		if err != nil || !proceed {
			return false, err
		}
	}

	s.report.Add(types.Action{Op: types.OpMkdir, Path: path})
	s.logger.Info().Str("path", path).Msg("creating directory")
	if s.opts.Apply {
		if err := s.fs.MkdirAll(path, 0755); err != nil {
			return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
		}
	}
	return true, nil
}
