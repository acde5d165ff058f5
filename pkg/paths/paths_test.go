package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"bare_tilde", "~", home},
		{"tilde_slash", "~/dotfiles", filepath.Join(home, "dotfiles")},
		{"tilde_user_untouched", "~other/dir", "~other/dir"},
		{"absolute_untouched", "/etc/hosts", "/etc/hosts"},
		{"relative_untouched", "dir/file", "dir/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ExpandHome(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	_, err := paths.Normalize("")
	assert.Error(t, err, "empty path should be rejected")

	got, err := paths.Normalize("/a/b/../c/")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", got)
}

func TestDefaultDest_EnvOverride(t *testing.T) {
	t.Setenv(paths.EnvDestDir, "/custom/dest")
	assert.Equal(t, "/custom/dest", paths.DefaultDest())
}

func TestDefaultDest_HomeFallback(t *testing.T) {
	t.Setenv(paths.EnvDestDir, "")
	t.Setenv("HOME", "/test/home")
	assert.Equal(t, "/test/home", paths.DefaultDest())
}

func TestFindSourceRoot_ExplicitArg(t *testing.T) {
	dir := t.TempDir()
	root, fallback, err := paths.FindSourceRoot(dir)
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, dir, root)
}

func TestFindSourceRoot_EnvWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvSourceRoot, dir)

	root, fallback, err := paths.FindSourceRoot("")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, dir, root)
}

func TestResolve_PlainPath(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := realTempDir(t)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))

	got, err := paths.Resolve(fsys, sub)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestResolve_MissingTailKeptLiterally(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := realTempDir(t)

	missing := filepath.Join(dir, "nope", "deeper", "file.txt")
	got, err := paths.Resolve(fsys, missing)
	require.NoError(t, err)
	assert.Equal(t, missing, got)
}

func TestResolve_FollowsSymlinkedDir(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := realTempDir(t)

	real := filepath.Join(dir, "real")
	require.NoError(t, os.MkdirAll(real, 0755))
	alias := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(real, alias))

	got, err := paths.Resolve(fsys, filepath.Join(alias, "tail.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(real, "tail.txt"), got, "dir symlink should be resolved, missing tail kept")
}

func TestResolve_RelativeLinkTarget(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := realTempDir(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "real"), 0755))
	require.NoError(t, os.Symlink("real", filepath.Join(dir, "rel-alias")))

	got, err := paths.Resolve(fsys, filepath.Join(dir, "rel-alias"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "real"), got)
}

func TestResolve_ChainedLinks(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := realTempDir(t)

	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
	one := filepath.Join(dir, "one")
	two := filepath.Join(dir, "two")
	require.NoError(t, os.Symlink(target, one))
	require.NoError(t, os.Symlink(one, two))

	got, err := paths.Resolve(fsys, two)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestResolve_LinkCycleFails(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := realTempDir(t)

	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.Symlink(a, b))
	require.NoError(t, os.Symlink(b, a))

	_, err := paths.Resolve(fsys, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many levels")
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		root      string
		want      bool
	}{
		{"equal", "/home/user", "/home/user", true},
		{"direct_child", "/home/user/file", "/home/user", true},
		{"nested", "/home/user/a/b/c", "/home/user", true},
		{"sibling", "/home/other", "/home/user", false},
		{"parent", "/home", "/home/user", false},
		{"prefix_but_not_nested", "/home/userdata", "/home/user", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.IsWithin(tt.candidate, tt.root))
		})
	}
}

// realTempDir returns a temp dir with any platform symlinks (e.g. /tmp
// on macOS) already resolved, so expectations compare cleanly.
func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}
