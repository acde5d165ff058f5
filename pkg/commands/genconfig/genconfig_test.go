package genconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotsync/pkg/commands/genconfig"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/testutil"
)

func TestGenConfig_Defaults(t *testing.T) {
	result, err := genconfig.GenConfig(genconfig.Options{})
	require.NoError(t, err)

	assert.Equal(t, string(config.DefaultTOML()), result.Content)
	assert.Contains(t, result.Content, "[link]")
	assert.Contains(t, result.Content, "[providers.codex]")
	assert.Empty(t, result.FilesWritten)
}

func TestGenConfig_Write(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	target := filepath.Join(env.SourceRoot, ".dotsync.toml")

	result, err := genconfig.GenConfig(genconfig.Options{
		Write:      true,
		FileSystem: env.FS,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{target}, result.FilesWritten)

	data, err := env.FS.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTOML(), data)

	// A second write leaves the existing file alone.
	result, err = genconfig.GenConfig(genconfig.Options{
		Write:      true,
		FileSystem: env.FS,
	})
	require.NoError(t, err)
	assert.Empty(t, result.FilesWritten)
}

func TestGenConfig_Effective(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	require.NoError(t, os.WriteFile(
		filepath.Join(env.SourceRoot, ".dotsync.toml"),
		[]byte("[link]\nmode = \"skip\"\n"), 0644))

	result, err := genconfig.GenConfig(genconfig.Options{
		Effective:  true,
		FileSystem: env.FS,
	})
	require.NoError(t, err)

	assert.Contains(t, result.Content, "skip")
	assert.NotContains(t, result.Content, "backup", "the file override wins over the shipped default")
	assert.Contains(t, result.Content, "[skills]")
	assert.Contains(t, result.Content, "[providers.codex]")
	assert.Empty(t, result.FilesWritten)
}
