// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments for engine and command tests

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	// EnvMemoryOnly is a pure in-memory filesystem. It has no symlink
	// or hardlink semantics, so use it only for tests that need neither.
	EnvMemoryOnly EnvType = iota
	// EnvIsolated is a real filesystem inside t.TempDir().
	EnvIsolated
)

// TestEnvironment provides an isolated source tree, home directory and
// canonical skill store for a test.
type TestEnvironment struct {
	// SourceRoot is the tree dotfile linking mirrors.
	SourceRoot string
	// HomeDir doubles as the link destination and the parent of
	// provider roots.
	HomeDir string
	// StoreDir is the canonical skill store, SourceRoot/skills.
	StoreDir string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a test environment of the given type.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.SourceRoot = "/virtual/source"
		env.HomeDir = "/virtual/home"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		// Resolve the temp dir so symlink-target comparisons in tests
		// are not confused by platform tmp symlinks.
		tempDir, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.SourceRoot = filepath.Join(tempDir, "source")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = filesystem.NewOS()
	}
	env.StoreDir = filepath.Join(env.SourceRoot, "skills")

	for _, dir := range []string{env.SourceRoot, env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			env.t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("DOTSYNC_ROOT", env.SourceRoot)
	// Keep the host's DEST_DIR out of destination resolution.
	t.Setenv("DEST_DIR", "")

	return env
}

// FileTree represents a directory structure for testing. String values
// are file contents; nested FileTree values are directories.
type FileTree map[string]interface{}

// WithFileTree creates a file tree under the source root.
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.SourceRoot, tree)
}

// WithFileTreeAt creates a file tree under an arbitrary base directory.
func (env *TestEnvironment) WithFileTreeAt(base string, tree FileTree) {
	env.t.Helper()
	if err := env.FS.MkdirAll(base, 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", base, err)
	}
	createFileTree(env.t, env.FS, base, tree)
}

// SetupBundle creates a bundle directory in the store with the given
// files (paths may be nested).
func (env *TestEnvironment) SetupBundle(name string, files map[string]string) string {
	env.t.Helper()

	bundlePath := filepath.Join(env.StoreDir, name)
	if err := env.FS.MkdirAll(bundlePath, 0755); err != nil {
		env.t.Fatalf("Failed to create bundle directory: %v", err)
	}

	for filePath, content := range files {
		fullPath := filepath.Join(bundlePath, filePath)
		if dir := filepath.Dir(fullPath); dir != bundlePath {
			if err := env.FS.MkdirAll(dir, 0755); err != nil {
				env.t.Fatalf("Failed to create directory %s: %v", dir, err)
			}
		}
		if err := env.FS.WriteFile(fullPath, []byte(content), 0644); err != nil {
			env.t.Fatalf("Failed to write file %s: %v", filePath, err)
		}
	}
	return bundlePath
}

// ProviderRoot creates (if needed) and returns a provider root under
// the home directory, e.g. ProviderRoot("codex") -> <home>/.codex.
func (env *TestEnvironment) ProviderRoot(name string) string {
	env.t.Helper()

	root := filepath.Join(env.HomeDir, "."+name)
	if err := env.FS.MkdirAll(root, 0755); err != nil {
		env.t.Fatalf("Failed to create provider root: %v", err)
	}
	return root
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
