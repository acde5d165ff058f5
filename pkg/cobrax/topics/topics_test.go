package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFiles() fstest.MapFS {
	return fstest.MapFS{
		"conflicts.md":   {Data: []byte("# Conflicts\n\nHow collisions are resolved.\n")},
		"layout.txt":     {Data: []byte("Source layout notes.\n")},
		"option-mode.md": {Data: []byte("# --mode\n\nPolicy override.\n")},
		"notes.json":     {Data: []byte("not a topic")},
	}
}

func TestManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m := New(topicFiles())
		require.NoError(t, m.scanTopics())

		assert.Equal(t, []string{"conflicts", "layout", "option-mode"}, m.ListTopics())

		topic, ok := m.GetTopic("layout")
		require.True(t, ok)
		assert.Equal(t, "Source layout notes.\n", topic.Content)

		_, ok = m.GetTopic("notes")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		m := NewWithOptions(topicFiles(), Options{Extensions: []string{".md"}})
		require.NoError(t, m.scanTopics())

		assert.Equal(t, []string{"conflicts", "option-mode"}, m.ListTopics())
	})
}

func TestManager_GetTopic_FlagStyle(t *testing.T) {
	m := New(topicFiles())
	require.NoError(t, m.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"conflicts", "conflicts", true},
		{"option-mode", "option-mode", true},
		{"mode", "option-mode", true},
		{"--mode", "option-mode", true},
		{"-mode", "option-mode", true},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := m.GetTopic(tt.input)
			assert.Equal(t, tt.exists, ok)
			if ok {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestManager_EmptyFS(t *testing.T) {
	m := New(fstest.MapFS{})
	require.NoError(t, m.scanTopics())
	assert.Empty(t, m.ListTopics())
}

// newTestApp builds a small CLI with the topic help installed and a
// buffer capturing its output.
func newTestApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	require.NoError(t, Initialize(rootCmd, topicFiles()))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	return rootCmd, buf
}

func TestInitialize_RendersTopic(t *testing.T) {
	rootCmd, buf := newTestApp(t)

	rootCmd.SetArgs([]string{"help", "layout"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Source layout notes.")
}

func TestInitialize_ListsTopics(t *testing.T) {
	rootCmd, buf := newTestApp(t)

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "General topics:")
	assert.Contains(t, out, "conflicts")
	assert.Contains(t, out, "Option topics:")
	assert.Contains(t, out, "--mode")
}

func TestInitialize_FallsBackToCommandHelp(t *testing.T) {
	rootCmd, buf := newTestApp(t)

	rootCmd.SetArgs([]string{"help", "run"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Run something")
}

func TestInitialize_UnknownTopic(t *testing.T) {
	rootCmd, buf := newTestApp(t)

	rootCmd.SetArgs([]string{"help", "bogus"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Unknown help topic")
}
