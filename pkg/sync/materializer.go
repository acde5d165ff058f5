package sync

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// backupNameRe matches the timestamped names resolveConflict leaves
// behind, so earlier backups never leak into a provider.
var backupNameRe = regexp.MustCompile(`\.bak-\d{8}-\d{6}$`)

func isBackupName(name string) bool {
	return backupNameRe.MatchString(name)
}

// Materialize mirrors every store bundle into providerSkills as real
// directories and files, for providers whose scanners do not traverse
// symlinks. Files are hardlinked when the filesystem allows it and
// copied otherwise; either way the store stays the only writable home
// of the bundle. A destination file that already carries the canonical
// content (same inode or identical bytes) is a noop, which keeps
// repeated runs quiet.
func (s *Syncer) Materialize(store, providerSkills string) error {
	entries, err := s.fs.ReadDir(store)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", store)
	}

	for _, de := range entries {
		name := de.Name()
		if s.skillIgnored(name) || strings.HasPrefix(name, ".") {
			continue
		}

		srcPath := filepath.Join(store, name)
		if !de.IsDir() {
			return errors.Newf(errors.ErrOwnership, "store bundle is not a directory: %s", srcPath)
		}

		destDir := filepath.Join(providerSkills, name)
		proceed, err := s.EnsureDir(destDir)
		if err != nil {
			return err
		}
		if proceed {
			if err := s.syncContents(srcPath, destDir); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncContents mirrors the inside of one bundle directory. Bundle
// contents must not be symlinks; that is a store contract violation,
// not a conflict.
func (s *Syncer) syncContents(srcDir, destDir string) error {
	entries, err := s.fs.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", srcDir)
	}

	for _, de := range entries {
		name := de.Name()
		if s.contentIgnored(name) || isBackupName(name) {
			continue
		}

		srcPath := filepath.Join(srcDir, name)
		destPath := filepath.Join(destDir, name)

		if de.Type()&fs.ModeSymlink != 0 {
			return errors.Newf(errors.ErrOwnership, "bundle entries must not be symlinks: %s", srcPath)
		}

		if de.IsDir() {
			proceed, err := s.EnsureDir(destPath)
			if err != nil {
				return err
			}
			if proceed {
				if err := s.syncContents(srcPath, destPath); err != nil {
					return err
				}
			}
			continue
		}

		if err := s.syncFile(srcPath, destPath); err != nil {
			return err
		}
	}
	return nil
}

// syncFile lands one canonical file at dest, via the conflict policy
// when dest holds something else.
func (s *Syncer) syncFile(src, dest string) error {
	entry, err := s.inspect(dest)
	if err != nil {
		return err
	}

	if entry.Kind == types.KindFile {
		same, err := s.sameContent(src, dest)
		if err != nil {
			return err
		}
		if same {
			s.report.Add(types.Action{Op: types.OpNoop, Path: dest, Note: "in sync"})
			s.logger.Debug().Str("dest", dest).Msg("already in sync")
			return nil
		}
	}

	if entry.Exists() {
		proceed, err := s.resolveConflict(dest)
		if err != nil || !proceed {
			return err
		}
	}

	s.report.Add(types.Action{Op: types.OpSync, Path: dest, Target: src})
	s.logger.Info().Str("dest", dest).Str("source", src).Msg("syncing file")
	if !s.opts.Apply {
		return nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", dest)
	}
	if err := s.fs.Link(src, dest); err != nil {
		s.logger.Debug().Err(err).Str("dest", dest).Msg("hardlink failed, copying instead")
		return s.copyFile(src, dest)
	}
	return nil
}

// sameContent reports whether dest already carries the canonical file,
// either as the same inode or as an identical copy.
func (s *Syncer) sameContent(src, dest string) (bool, error) {
	srcInfo, err := s.fs.Stat(src)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
	}
	destInfo, err := s.fs.Stat(dest)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", dest)
	}

	if os.SameFile(srcInfo, destInfo) {
		return true, nil
	}
	if srcInfo.Size() != destInfo.Size() {
		return false, nil
	}

	srcBytes, err := s.fs.ReadFile(src)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	destBytes, err := s.fs.ReadFile(dest)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dest)
	}
	return bytes.Equal(srcBytes, destBytes), nil
}

// copyFile copies content and permissions, preserving the source
// mtime so re-sync comparisons stay cheap.
func (s *Syncer) copyFile(src, dest string) error {
	data, err := s.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src)
	}
	info, err := s.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
	}
	if err := s.fs.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", dest)
	}
	if err := s.fs.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		s.logger.Debug().Err(err).Str("dest", dest).Msg("could not preserve mtime")
	}
	return nil
}
