package types

// EntryKind is the closed set of filesystem entry kinds the engine
// distinguishes. Kind is determined by a fresh Lstat at inspection time
// and never cached across steps.
type EntryKind int

const (
	// KindAbsent means no entry exists at the path
	KindAbsent EntryKind = iota
	// KindFile is a regular file (or any non-dir, non-symlink entry)
	KindFile
	// KindDir is a directory
	KindDir
	// KindSymlink is a symbolic link, regardless of what it points at
	KindSymlink
)

// String returns the string representation of the kind
func (k EntryKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Entry is a path plus its kind at the moment of inspection
type Entry struct {
	Path string
	Kind EntryKind
	// LinkTarget is the raw readlink result for symlinks, empty otherwise
	LinkTarget string
}

// Exists reports whether any entry is present at the path
func (e Entry) Exists() bool {
	return e.Kind != KindAbsent
}

// IsDir reports whether the entry is a directory (not a symlink to one)
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// IsSymlink reports whether the entry is a symbolic link
func (e Entry) IsSymlink() bool {
	return e.Kind == KindSymlink
}
