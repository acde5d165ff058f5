package types_test

import (
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Policy
		wantErr bool
	}{
		{"skip", types.PolicySkip, false},
		{"backup", types.PolicyBackup, false},
		{"replace", types.PolicyReplace, false},
		{"fail", types.PolicyFail, false},
		{"", types.PolicyBackup, false},
		{"merge", "", true},
		{"BACKUP", "", true},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			got, err := types.ParsePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyValid(t *testing.T) {
	assert.True(t, types.PolicySkip.Valid())
	assert.True(t, types.PolicyFail.Valid())
	assert.False(t, types.Policy("merge").Valid())
	assert.False(t, types.Policy("").Valid())
}

func TestEntryKindString(t *testing.T) {
	assert.Equal(t, "absent", types.KindAbsent.String())
	assert.Equal(t, "file", types.KindFile.String())
	assert.Equal(t, "dir", types.KindDir.String())
	assert.Equal(t, "symlink", types.KindSymlink.String())
}

func TestEntryPredicates(t *testing.T) {
	absent := types.Entry{Path: "/x", Kind: types.KindAbsent}
	assert.False(t, absent.Exists())

	dir := types.Entry{Path: "/x", Kind: types.KindDir}
	assert.True(t, dir.Exists())
	assert.True(t, dir.IsDir())
	assert.False(t, dir.IsSymlink())

	link := types.Entry{Path: "/x", Kind: types.KindSymlink, LinkTarget: "/y"}
	assert.True(t, link.IsSymlink())
	assert.False(t, link.IsDir(), "a symlink to a directory is not a directory entry")
}

func TestActionDetail(t *testing.T) {
	tests := []struct {
		name   string
		action types.Action
		want   string
	}{
		{
			name:   "single_path",
			action: types.Action{Op: types.OpSkip, Path: "/home/.bashrc"},
			want:   "/home/.bashrc",
		},
		{
			name:   "link_arrow",
			action: types.Action{Op: types.OpLink, Path: "/home/.bashrc", Target: "/dotfiles/.bashrc"},
			want:   "/home/.bashrc -> /dotfiles/.bashrc",
		},
		{
			name:   "sync_reverse_arrow",
			action: types.Action{Op: types.OpSync, Path: "/codex/skills/foo/SKILL.md", Target: "/repo/skills/foo/SKILL.md"},
			want:   "/codex/skills/foo/SKILL.md <- /repo/skills/foo/SKILL.md",
		},
		{
			name:   "note_appended",
			action: types.Action{Op: types.OpNoop, Path: "/codex/skills/foo", Note: "already linked"},
			want:   "/codex/skills/foo already linked",
		},
		{
			name:   "ignore_with_dest_marker",
			action: types.Action{Op: types.OpIgnore, Path: "nested/dir", Note: "(dest)"},
			want:   "nested/dir (dest)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.Detail())
		})
	}
}

func TestReportCountAndMutations(t *testing.T) {
	r := &types.Report{}
	r.Add(types.Action{Op: types.OpRoot, Path: "/src", Target: "/dst"})
	r.Add(types.Action{Op: types.OpLink, Path: "/dst/a", Target: "/src/a"})
	r.Add(types.Action{Op: types.OpNoop, Path: "/dst/b"})
	r.Add(types.Action{Op: types.OpBackup, Path: "/dst/c", Target: "/dst/c.bak-20240101-000000"})
	r.Add(types.Action{Op: types.OpSkip, Path: "/dst/d"})

	assert.Equal(t, 1, r.Count(types.OpLink))
	assert.Equal(t, 2, r.Count(types.OpLink, types.OpBackup))
	assert.Equal(t, 0, r.Count(types.OpRemove))

	muts := r.Mutations()
	require.Len(t, muts, 2)
	assert.Equal(t, types.OpLink, muts[0].Op)
	assert.Equal(t, types.OpBackup, muts[1].Op)
}

func TestOpMutating(t *testing.T) {
	for _, op := range []types.Op{types.OpLink, types.OpMkdir, types.OpMove, types.OpSync, types.OpBackup, types.OpRemove} {
		assert.True(t, op.Mutating(), "%s should be mutating", op)
	}
	for _, op := range []types.Op{types.OpRoot, types.OpIgnore, types.OpNoop, types.OpSkip} {
		assert.False(t, op.Mutating(), "%s should not be mutating", op)
	}
}
