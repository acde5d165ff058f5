// Package topics adds file-backed help topics to a cobra application.
// Topics sit alongside the normal command help: `app help <topic>`
// renders the topic file, anything else falls through to cobra's own
// help. Topic files come from an fs.FS, so they can ship embedded in
// the binary.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help topic, named after its file.
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the help system.
type Options struct {
	// Extensions lists the file extensions treated as topic files.
	// Defaults to ".txt" and ".md".
	Extensions []string

	// Renderer formats topic content for the terminal. Defaults to
	// PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics scanned from a file system.
type Manager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// New creates a Manager reading topics from fsys with default options.
func New(fsys fs.FS) *Manager {
	return NewWithOptions(fsys, Options{})
}

// NewWithOptions creates a Manager with custom options.
func NewWithOptions(fsys fs.FS, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	return m
}

// scanTopics loads every topic file in the file system. A missing or
// empty file system means no topics, not a broken help system.
func (m *Manager) scanTopics() error {
	if _, err := fs.Stat(m.fsys, "."); err != nil {
		return nil
	}

	return fs.WalkDir(m.fsys, ".", func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Content:  string(content),
		}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// GetTopic finds a topic by name. Flag-style names resolve against
// "option-" prefixed topics, so "--mode" finds "option-mode".
func (m *Manager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// ListTopics returns the scanned topic names, sorted.
func (m *Manager) ListTopics() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) render(w io.Writer, t *Topic) {
	fmt.Fprint(w, m.renderer.Render(t.Content, path.Ext(t.FilePath)))
}

// printTopicList writes the topic index, option topics shown in flag
// form.
func (m *Manager) printTopicList(w io.Writer, appName string) {
	names := m.ListTopics()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse \"%s help <topic>\" to read about a specific topic.\n", appName)
}

// Initialize installs topic-aware help on rootCmd with default options.
func Initialize(rootCmd *cobra.Command, fsys fs.FS) error {
	return InitializeWithOptions(rootCmd, fsys, Options{})
}

// InitializeWithOptions installs a help command that knows about both
// commands and topics, and routes the --help flag through the same
// topic lookup.
func InitializeWithOptions(rootCmd *cobra.Command, fsys fs.FS, opts Options) error {
	m := NewWithOptions(fsys, opts)

	if err := m.scanTopics(); err != nil {
		return fmt.Errorf("failed to scan topics: %w", err)
	}

	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		// Cobra appends its own help command on execute. Keeping this
		// one hidden avoids a double listing while name lookup still
		// resolves here, because it registers first.
		Hidden: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				m.originalHelp(rootCmd, args)
				return
			}
			if args[0] == "topics" {
				m.printTopicList(w, rootCmd.Name())
				return
			}
			if t, ok := m.GetTopic(args[0]); ok {
				m.render(w, t)
				return
			}

			// Not a topic, resolve it as a command path.
			target, _, err := rootCmd.Find(args)
			if target == nil || err != nil {
				fmt.Fprintf(w, "Unknown help topic %#q\n", args)
				_ = rootCmd.Usage()
				return
			}
			m.originalHelp(target, args)
		},
	}

	rootCmd.AddCommand(helpCmd)

	// The --help flag checks topics first so `app --help <topic>`
	// behaves like `app help <topic>`.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.GetTopic(args[0]); ok {
				m.render(cmd.OutOrStdout(), t)
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return nil
}
