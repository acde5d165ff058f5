package sync_test

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/clock"
	"github.com/arthur-debert/dotsync/pkg/sync"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
)

var fixedTime = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

// fixedStamp is fixedTime in the backup-name layout.
const fixedStamp = "20240314-150926"

func newSyncer(env *testutil.TestEnvironment, policy types.Policy, apply bool) *sync.Syncer {
	return sync.New(sync.Options{
		FS:     env.FS,
		Clock:  clock.NewFake(fixedTime),
		Policy: policy,
		Apply:  apply,
	})
}

// opsOf flattens a report to its op sequence for order assertions.
func opsOf(r *types.Report) []types.Op {
	out := make([]types.Op, len(r.Actions))
	for i, a := range r.Actions {
		out[i] = a.Op
	}
	return out
}

// findAction returns the first action with the given op and path.
func findAction(r *types.Report, op types.Op, path string) *types.Action {
	for i := range r.Actions {
		if r.Actions[i].Op == op && r.Actions[i].Path == path {
			return &r.Actions[i]
		}
	}
	return nil
}

// assertSymlink verifies link is a symlink whose literal target is want.
func assertSymlink(t *testing.T, env *testutil.TestEnvironment, link, want string) {
	t.Helper()

	info, err := env.FS.Lstat(link)
	require.NoError(t, err, "symlink should exist: %s", link)
	require.True(t, info.Mode()&fs.ModeSymlink != 0, "%s should be a symlink", link)

	target, err := env.FS.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, want, target, "symlink target mismatch for %s", link)
}

// assertRegularFile verifies path is a plain file with the given content.
func assertRegularFile(t *testing.T, env *testutil.TestEnvironment, path, content string) {
	t.Helper()

	info, err := env.FS.Lstat(path)
	require.NoError(t, err, "file should exist: %s", path)
	require.True(t, info.Mode().IsRegular(), "%s should be a regular file", path)

	data, err := env.FS.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

// assertAbsent verifies nothing exists at path.
func assertAbsent(t *testing.T, env *testutil.TestEnvironment, path string) {
	t.Helper()

	entry, err := sync.Inspect(env.FS, path)
	require.NoError(t, err)
	assert.False(t, entry.Exists(), "%s should not exist", path)
}
