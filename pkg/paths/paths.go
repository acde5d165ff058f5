// Package paths provides centralized path handling for dotsync.
// It implements XDG Base Directory specification compliance and the
// symlink-aware path resolution the sync engine is built on.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Environment variable names
const (
	// EnvSourceRoot is the primary environment variable for the source tree
	EnvSourceRoot = "DOTSYNC_ROOT"

	// EnvDestDir overrides the default link destination ($HOME)
	EnvDestDir = "DEST_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DotsyncDirName is the directory name for dotsync-specific files
	DotsyncDirName = "dotsync"

	// ConfigFileName is the per-repo configuration file looked up in the
	// source root
	ConfigFileName = ".dotsync.toml"

	// AltConfigFileName is the undotted variant of the config file
	AltConfigFileName = "dotsync.toml"

	// LogFileName is the name of the log file
	LogFileName = "dotsync.log"
)

// maxLinkHops bounds symlink chains during resolution, mirroring the
// kernel's ELOOP limit closely enough for practical trees.
const maxLinkHops = 255

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// Normalize expands home, makes the path absolute, and cleans it
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}

// DataDir returns the XDG data directory for dotsync
func DataDir() string {
	return filepath.Join(xdg.DataHome, DotsyncDirName)
}

// ConfigDir returns the XDG config directory for dotsync
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, DotsyncDirName)
}

// StateDir returns the XDG state directory for dotsync
func StateDir() string {
	return filepath.Join(xdg.StateHome, DotsyncDirName)
}

// LogFilePath returns the path to the log file in the state directory
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// DefaultDest returns the default link destination: $DEST_DIR if set,
// otherwise the home directory.
func DefaultDest() string {
	if dest := os.Getenv(EnvDestDir); dest != "" {
		return ExpandHome(dest)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return xdg.Home
}

// FindSourceRoot determines the source tree root using the following
// priority:
// 1. The explicit argument (if non-empty)
// 2. DOTSYNC_ROOT environment variable
// 3. Git repository root (found via 'git rev-parse --show-toplevel')
// 4. Current working directory (fallback)
//
// The boolean result reports whether the cwd fallback was used, so the
// CLI can warn.
func FindSourceRoot(arg string) (string, bool, error) {
	if arg != "" {
		root, err := Normalize(arg)
		return root, false, err
	}

	if root := os.Getenv(EnvSourceRoot); root != "" {
		normalized, err := Normalize(root)
		return normalized, false, err
	}

	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	output, err := cmd.Output()
	if err != nil {
		// Not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// Resolve follows symlinks in every component of path without requiring
// the full path to exist: once a component is missing, the remainder is
// appended untouched. It operates on the injected filesystem so the
// engine stays testable against synthetic trees, where
// filepath.EvalSymlinks cannot reach.
func Resolve(fsys types.FS, path string) (string, error) {
	abs, err := Normalize(path)
	if err != nil {
		return "", err
	}

	parts := splitComponents(abs)
	resolved := string(filepath.Separator)
	hops := 0

	for i := 0; i < len(parts); i++ {
		candidate := filepath.Join(resolved, parts[i])

		info, err := fsys.Lstat(candidate)
		if err != nil {
			// Missing tail: keep the remaining components literally.
			return filepath.Join(append([]string{candidate}, parts[i+1:]...)...), nil
		}

		if info.Mode()&os.ModeSymlink == 0 {
			resolved = candidate
			continue
		}

		target, err := fsys.Readlink(candidate)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", candidate)
		}

		hops++
		if hops > maxLinkHops {
			return "", errors.Newf(errors.ErrFileAccess, "too many levels of symbolic links: %s", path)
		}

		if !filepath.IsAbs(target) {
			target = filepath.Join(resolved, target)
		}

		// Restart from the root with the link target spliced in front of
		// the unvisited components.
		parts = append(splitComponents(target), parts[i+1:]...)
		resolved = string(filepath.Separator)
		i = -1
	}

	return resolved, nil
}

// IsWithin reports whether candidate is root itself or nested under it.
// Both paths must already be absolute and resolved; the check is lexical.
func IsWithin(candidate, root string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func splitComponents(path string) []string {
	var parts []string
	for _, part := range strings.Split(filepath.Clean(path), string(filepath.Separator)) {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
