package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/spf13/afero"
)

// ErrHardlinkUnsupported is returned by Link when the wrapped afero
// filesystem cannot create hard links. Callers treat it like any other
// link failure and fall back to copying.
var ErrHardlinkUnsupported = errors.New("hard links not supported")

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAfero wraps an afero filesystem as a types.FS
func NewAfero(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewMemory creates an in-memory types.FS for tests that do not depend
// on symlink or hardlink semantics
func NewMemory() types.FS {
	return NewAfero(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Symlinker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	// Afero's MemMapFs doesn't support Symlink, so we simulate it by
	// creating a file with the symlink target as content. This is a
	// limitation of afero, but sufficient for many tests.
	return afero.WriteFile(a.fs, newname, []byte(oldname), 0777|os.ModeSymlink)
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	// Fallback for filesystems that don't support symlinks
	content, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *aferoFS) Link(oldname, newname string) error {
	// No afero backend exposes hard links
	return &fs.PathError{Op: "link", Path: newname, Err: ErrHardlinkUnsupported}
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Chtimes(name string, atime, mtime time.Time) error {
	return a.fs.Chtimes(name, atime, mtime)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	// For MemMapFs, Stat is sufficient for most tests
	return a.fs.Stat(name)
}
