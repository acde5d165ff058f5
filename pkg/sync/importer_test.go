// pkg/sync/importer_test.go
// TEST TYPE: Business Logic
// DEPENDENCIES: Memory filesystem; real filesystem for symlink cases
// PURPOSE: Verify bundle import: moves into the store, ownership checks
// and the lenient relaxations

package sync_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/sync"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// importEnv builds a provider skills directory and an empty store.
func importEnv(t *testing.T, envType testutil.EnvType) (*testutil.TestEnvironment, string) {
	t.Helper()

	env := testutil.NewTestEnvironment(t, envType)
	require.NoError(t, env.FS.MkdirAll(env.StoreDir, 0755))
	skills := filepath.Join(env.ProviderRoot("codex"), "skills")
	require.NoError(t, env.FS.MkdirAll(skills, 0755))
	return env, skills
}

func TestImport_MovesBundleIntoStore(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	env.WithFileTreeAt(filepath.Join(skills, "alpha"), testutil.FileTree{
		"SKILL.md": "# Alpha",
		"ref":      testutil.FileTree{"data.txt": "payload"},
	})

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	assert.Equal(t, []types.Op{types.OpMove}, opsOf(s.Report()))
	assertAbsent(t, env, filepath.Join(skills, "alpha"))
	assertRegularFile(t, env, filepath.Join(env.StoreDir, "alpha/SKILL.md"), "# Alpha")
	assertRegularFile(t, env, filepath.Join(env.StoreDir, "alpha/ref/data.txt"), "payload")
}

func TestImport_VisitsBundlesInNameOrder(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	env.WithFileTreeAt(skills, testutil.FileTree{
		"zeta":  testutil.FileTree{"SKILL.md": "z"},
		"alpha": testutil.FileTree{"SKILL.md": "a"},
	})

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	r := s.Report()
	require.Len(t, r.Actions, 2)
	assert.Equal(t, filepath.Join(skills, "alpha"), r.Actions[0].Path)
	assert.Equal(t, filepath.Join(skills, "zeta"), r.Actions[1].Path)
}

func TestImport_AlreadyLinkedBundleIsNoop(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvIsolated)
	env.SetupBundle("alpha", map[string]string{"SKILL.md": "# Alpha"})
	link := filepath.Join(skills, "alpha")
	require.NoError(t, env.FS.Symlink(filepath.Join(env.StoreDir, "alpha"), link))

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	action := findAction(s.Report(), types.OpNoop, link)
	require.NotNil(t, action)
	assert.Equal(t, "already linked", action.Note)
	assertSymlink(t, env, link, filepath.Join(env.StoreDir, "alpha"))
}

func TestImport_ForeignSymlinkFails(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvIsolated)
	elsewhere := filepath.Join(env.HomeDir, "elsewhere")
	require.NoError(t, env.FS.MkdirAll(elsewhere, 0755))
	require.NoError(t, env.FS.Symlink(elsewhere, filepath.Join(skills, "alpha")))

	s := newSyncer(env, types.PolicyBackup, true)
	err := s.ImportBundles(skills, env.StoreDir, sync.ImportRules{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOwnership))
	assert.Contains(t, err.Error(), "unexpected target")
}

func TestImport_BundleAlreadyInStore(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	env.SetupBundle("alpha", map[string]string{"SKILL.md": "store copy"})
	env.WithFileTreeAt(filepath.Join(skills, "alpha"), testutil.FileTree{
		"SKILL.md": "provider copy",
	})

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	// The store copy wins and the provider copy is left in place for
	// the operator to reconcile.
	action := findAction(s.Report(), types.OpNoop, filepath.Join(env.StoreDir, "alpha"))
	require.NotNil(t, action)
	assert.Equal(t, "already exists", action.Note)
	assertRegularFile(t, env, filepath.Join(env.StoreDir, "alpha/SKILL.md"), "store copy")
	assertRegularFile(t, env, filepath.Join(skills, "alpha/SKILL.md"), "provider copy")
}

func TestImport_StoreKindCollisionFails(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	env.WithFileTreeAt(filepath.Join(skills, "alpha"), testutil.FileTree{"SKILL.md": "x"})
	require.NoError(t, env.FS.WriteFile(filepath.Join(env.StoreDir, "alpha"), []byte("a file"), 0644))

	s := newSyncer(env, types.PolicyBackup, true)
	err := s.ImportBundles(skills, env.StoreDir, sync.ImportRules{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOwnership))
	assert.Contains(t, err.Error(), "different kind")
}

func TestImport_StrayFileFailsStrict(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	require.NoError(t, env.FS.WriteFile(filepath.Join(skills, "notes.txt"), []byte("stray"), 0644))

	s := newSyncer(env, types.PolicyBackup, true)
	err := s.ImportBundles(skills, env.StoreDir, sync.ImportRules{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOwnership))
	assert.Contains(t, err.Error(), "not a directory")
}

func TestImport_StrayFileSkippedWhenLenient(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	require.NoError(t, env.FS.WriteFile(filepath.Join(skills, "notes.txt"), []byte("stray"), 0644))
	env.WithFileTreeAt(filepath.Join(skills, "alpha"), testutil.FileTree{"SKILL.md": "x"})

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{Lenient: true}))

	assert.Equal(t, []types.Op{types.OpMove}, opsOf(s.Report()))
	assertRegularFile(t, env, filepath.Join(skills, "notes.txt"), "stray")
	assertRegularFile(t, env, filepath.Join(env.StoreDir, "alpha/SKILL.md"), "x")
}

func TestImport_SkipSuffixes(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	env.WithFileTreeAt(skills, testutil.FileTree{
		"alpha":      testutil.FileTree{"SKILL.md": "a"},
		"pack.skill": testutil.FileTree{"payload.bin": "zip"},
	})

	s := newSyncer(env, types.PolicyBackup, true)
	rules := sync.ImportRules{SkipSuffixes: []string{".skill"}}
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, rules))

	// Packaged bundles stay with the provider.
	assert.Equal(t, []types.Op{types.OpMove}, opsOf(s.Report()))
	assertRegularFile(t, env, filepath.Join(skills, "pack.skill/payload.bin"), "zip")
	assertAbsent(t, env, filepath.Join(env.StoreDir, "pack.skill"))
}

func TestImport_IgnoredNamesNeverFail(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)

	// .DS_Store is a stray file and would fail the strict contract if
	// the ignore list were consulted after the kind check.
	require.NoError(t, env.FS.WriteFile(filepath.Join(skills, ".DS_Store"), []byte{0}, 0644))
	require.NoError(t, env.FS.MkdirAll(filepath.Join(skills, ".system"), 0755))

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	assert.Empty(t, s.Report().Actions)
	assertAbsent(t, env, filepath.Join(env.StoreDir, ".system"))
}

func TestImport_AbsentSkillsDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	require.NoError(t, env.FS.MkdirAll(env.StoreDir, 0755))

	s := newSyncer(env, types.PolicyBackup, true)
	missing := filepath.Join(env.HomeDir, ".codex/skills")
	require.NoError(t, s.ImportBundles(missing, env.StoreDir, sync.ImportRules{}))
	assert.Empty(t, s.Report().Actions)
}

func TestImport_SkillsRootLinkedToStore(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	require.NoError(t, env.FS.MkdirAll(env.StoreDir, 0755))

	skills := filepath.Join(env.ProviderRoot("claude"), "skills")
	require.NoError(t, env.FS.Symlink(env.StoreDir, skills))

	s := newSyncer(env, types.PolicyBackup, true)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	action := findAction(s.Report(), types.OpNoop, skills)
	require.NotNil(t, action)
	assert.Equal(t, "already linked", action.Note)
}

func TestImport_SkillsRootForeignSymlinkFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	require.NoError(t, env.FS.MkdirAll(env.StoreDir, 0755))

	elsewhere := filepath.Join(env.HomeDir, "elsewhere")
	require.NoError(t, env.FS.MkdirAll(elsewhere, 0755))
	skills := filepath.Join(env.ProviderRoot("claude"), "skills")
	require.NoError(t, env.FS.Symlink(elsewhere, skills))

	s := newSyncer(env, types.PolicyBackup, true)
	err := s.ImportBundles(skills, env.StoreDir, sync.ImportRules{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOwnership))
}

func TestImport_PlanLeavesProviderIntact(t *testing.T) {
	env, skills := importEnv(t, testutil.EnvMemoryOnly)
	env.WithFileTreeAt(filepath.Join(skills, "alpha"), testutil.FileTree{"SKILL.md": "x"})

	s := newSyncer(env, types.PolicyBackup, false)
	require.NoError(t, s.ImportBundles(skills, env.StoreDir, sync.ImportRules{}))

	assert.Equal(t, []types.Op{types.OpMove}, opsOf(s.Report()))
	assertRegularFile(t, env, filepath.Join(skills, "alpha/SKILL.md"), "x")
	assertAbsent(t, env, filepath.Join(env.StoreDir, "alpha"))
}
