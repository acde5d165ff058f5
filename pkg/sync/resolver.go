package sync

import (
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// backupStamp is the second-resolution timestamp in backup names.
const backupStamp = "20060102-150405"

// resolveConflict applies the run's conflict policy to an occupied path
// and reports whether the caller may go on to claim it. The existing
// entry is preserved (skip), moved aside (backup), deleted (replace),
// or the run aborts (fail).
func (s *Syncer) resolveConflict(path string) (bool, error) {
	switch s.opts.Policy {
	case types.PolicySkip:
		s.report.Add(types.Action{Op: types.OpSkip, Path: path})
		s.logger.Info().Str("path", path).Msg("skipping existing entry")
		return false, nil

	case types.PolicyFail:
		return false, errors.Newf(errors.ErrPolicy, "path already exists: %s", path)

	case types.PolicyBackup:
		backup := s.backupPath(path)
		s.report.Add(types.Action{Op: types.OpBackup, Path: path, Target: backup})
		s.logger.Info().Str("path", path).Str("backup", backup).Msg("backing up existing entry")
		if s.opts.Apply {
			if err := s.fs.Rename(path, backup); err != nil {
				return false, errors.Wrapf(err, errors.ErrFileMove, "failed to back up %s", path)
			}
		}
		return true, nil

	case types.PolicyReplace:
		s.report.Add(types.Action{Op: types.OpRemove, Path: path})
		s.logger.Info().Str("path", path).Msg("removing existing entry")
		if s.opts.Apply {
			if err := s.removePath(path); err != nil {
				return false, err
			}
		}
		return true, nil
	}

	return false, errors.Newf(errors.ErrConfig, "unknown conflict mode: %q", s.opts.Policy)
}

// backupPath returns the timestamped sibling an entry is moved to under
// the backup policy. Two conflicts on the same path within one second
// collide; the second rename then overwrites the first backup.
func (s *Syncer) backupPath(path string) string {
	return path + ".bak-" + s.clock.Now().Format(backupStamp)
}

// removePath deletes an entry of any kind, recursing into directories.
func (s *Syncer) removePath(path string) error {
	entry, err := s.inspect(path)
	if err != nil {
		return err
	}
	if entry.IsDir() {
		if err := s.fs.RemoveAll(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", path)
		}
		return nil
	}
	if err := s.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", path)
	}
	return nil
}
