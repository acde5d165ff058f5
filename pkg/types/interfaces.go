package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for dotsync operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Hard links; implementations without support return an error and
	// callers fall back to copying
	Link(oldname, newname string) error

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
	Chtimes(name string, atime, mtime time.Time) error

	// Optional operations - implementations should check for support.
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}
