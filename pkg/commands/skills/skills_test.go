package skills_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/commands/skills"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/testutil"
)

const refactorDescriptor = `---
name: Refactor Helper
description: Fast structural refactors
---

# Refactor Helper

Rename things without fear.
`

func TestListSkills(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.SetupBundle("refactor", map[string]string{"SKILL.md": refactorDescriptor})
	env.SetupBundle("zeta", map[string]string{"notes.txt": "no descriptor here\n"})
	env.SetupBundle(".system", map[string]string{"SKILL.md": "# hidden\n"})

	list, err := skills.ListSkills(skills.Options{FileSystem: env.FS})
	require.NoError(t, err)

	require.Len(t, list, 2, "hidden entries are not bundles")
	assert.Equal(t, "refactor", list[0].Name)
	assert.Equal(t, "Refactor Helper", list[0].Title())
	assert.Equal(t, "Fast structural refactors", list[0].Meta.Description)
	assert.Equal(t, "zeta", list[1].Name)
	assert.False(t, list[1].HasDescriptor)
	assert.Equal(t, "zeta", list[1].Title())
}

func TestListSkills_EmptyStore(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	require.NoError(t, env.FS.MkdirAll(env.StoreDir, 0755))

	list, err := skills.ListSkills(skills.Options{FileSystem: env.FS})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListSkills_MissingStore(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := skills.ListSkills(skills.Options{FileSystem: env.FS})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestShowSkill(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.SetupBundle("refactor", map[string]string{"SKILL.md": refactorDescriptor})

	b, err := skills.ShowSkill(skills.Options{FileSystem: env.FS}, "refactor")
	require.NoError(t, err)

	assert.True(t, b.HasDescriptor)
	assert.Equal(t, "Refactor Helper", b.Title())
	assert.Contains(t, b.Body, "Rename things without fear.")
}

func TestShowSkill_NotFound(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	require.NoError(t, env.FS.MkdirAll(env.StoreDir, 0755))

	_, err := skills.ShowSkill(skills.Options{FileSystem: env.FS}, "ghost")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
