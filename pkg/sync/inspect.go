package sync

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Inspect classifies the entry at path without following symlinks.
// Every component re-inspects at the moment it acts; kinds are never
// cached across steps.
func Inspect(fsys types.FS, path string) (types.Entry, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return types.Entry{Path: path, Kind: types.KindAbsent}, nil
		}
		return types.Entry{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path)
	}

	entry := types.Entry{Path: path}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		entry.Kind = types.KindSymlink
		// Best effort; a vanished link still classifies as a symlink.
		if target, err := fsys.Readlink(path); err == nil {
			entry.LinkTarget = target
		}
	case info.IsDir():
		entry.Kind = types.KindDir
	default:
		entry.Kind = types.KindFile
	}
	return entry, nil
}

func (s *Syncer) inspect(path string) (types.Entry, error) {
	return Inspect(s.fs, path)
}
