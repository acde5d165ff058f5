// Package dotsync wires the command implementations to a cobra CLI.
// Commands stay thin: flags map onto the option structs in
// pkg/commands, results go through the pkg/ui renderers.
package dotsync

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotsync/internal/version"
	"github.com/arthur-debert/dotsync/pkg/bundles"
	"github.com/arthur-debert/dotsync/pkg/cobrax/topics"
	"github.com/arthur-debert/dotsync/pkg/commands/genconfig"
	"github.com/arthur-debert/dotsync/pkg/commands/link"
	"github.com/arthur-debert/dotsync/pkg/commands/providers"
	"github.com/arthur-debert/dotsync/pkg/commands/skills"
	"github.com/arthur-debert/dotsync/pkg/commands/status"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/ui"
)

//go:embed topics
var topicFiles embed.FS

// rootOptions carries the persistent flag values every command shares.
type rootOptions struct {
	verbosity  int
	format     string
	configFile string
}

// newRenderer builds the renderer the --format flag selects, writing to
// the command's stdout.
func (o *rootOptions) newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotsync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but exit non-zero.
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(opts))
	rootCmd.AddCommand(newSyncCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newSkillsCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Help topics ship inside the binary.
	if topicsDir, err := fs.Sub(topicFiles, "topics"); err == nil {
		_ = topics.InitializeWithOptions(rootCmd, topicsDir, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

// providerNamesCompletion provides shell completion for provider names
func providerNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	root, _, err := paths.FindSourceRoot("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.LoadConfiguration(config.LoadOptions{SourceRoot: root})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var available []string
	for _, name := range cfg.ProviderNames() {
		taken := false
		for _, arg := range args {
			if arg == name {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, name)
		}
	}
	return available, cobra.ShellCompDirectiveNoFileComp
}

// bundleNamesCompletion provides shell completion for store bundle names
func bundleNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	root, _, err := paths.FindSourceRoot("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.LoadConfiguration(config.LoadOptions{SourceRoot: root})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	list, err := bundles.List(filesystem.NewOS(), filepath.Join(root, cfg.Skills.Dir))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, len(list))
	for _, b := range list {
		names = append(names, b.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newLinkCmd(opts *rootOptions) *cobra.Command {
	var (
		dest     string
		mode     string
		topLevel bool
		apply    bool
	)

	cmd := &cobra.Command{
		Use:     "link [source-dir]",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer(cmd)
			if err != nil {
				return err
			}

			var sourceRoot string
			if len(args) > 0 {
				sourceRoot = args[0]
			}

			report, runErr := link.LinkDotfiles(link.Options{
				SourceRoot: sourceRoot,
				ConfigFile: opts.configFile,
				Dest:       dest,
				Mode:       mode,
				TopLevel:   topLevel,
				Apply:      apply,
			})
			// A partial report still shows everything decided before a
			// failure stopped the run.
			if report != nil {
				if err := renderer.RenderResult(report); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}
			if !apply {
				return renderer.RenderMessage(MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", MsgFlagDest)
	cmd.Flags().StringVar(&mode, "mode", "", MsgFlagMode)
	cmd.Flags().BoolVar(&topLevel, "top-level", false, MsgFlagTopLevel)
	cmd.Flags().BoolVar(&apply, "apply", false, MsgFlagApply)

	return cmd
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var (
		mode       string
		importOnly bool
		exposeOnly bool
		apply      bool
	)

	cmd := &cobra.Command{
		Use:               "sync [providers...]",
		Short:             MsgSyncShort,
		Long:              MsgSyncLong,
		Example:           MsgSyncExample,
		GroupID:           "core",
		ValidArgsFunction: providerNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer(cmd)
			if err != nil {
				return err
			}

			report, runErr := providers.SyncProviders(providers.Options{
				ConfigFile: opts.configFile,
				Names:      args,
				Mode:       mode,
				ImportOnly: importOnly,
				ExposeOnly: exposeOnly,
				Apply:      apply,
			})
			if report != nil {
				if err := renderer.RenderResult(report); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}
			if !apply {
				return renderer.RenderMessage(MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", MsgFlagMode)
	cmd.Flags().BoolVar(&importOnly, "import-only", false, MsgFlagImportOnly)
	cmd.Flags().BoolVar(&exposeOnly, "expose-only", false, MsgFlagExposeOnly)
	cmd.Flags().BoolVar(&apply, "apply", false, MsgFlagApply)
	cmd.MarkFlagsMutuallyExclusive("import-only", "expose-only")

	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status [source-dir]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer(cmd)
			if err != nil {
				return err
			}

			var sourceRoot string
			if len(args) > 0 {
				sourceRoot = args[0]
			}

			report, runErr := status.Status(status.Options{
				SourceRoot: sourceRoot,
				ConfigFile: opts.configFile,
			})
			if report != nil {
				if err := renderer.RenderResult(report); err != nil {
					return err
				}
			}
			return runErr
		},
	}
}

func newSkillsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "skills",
		Short:   MsgSkillsShort,
		Long:    MsgSkillsLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgSkillsListShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer(cmd)
			if err != nil {
				return err
			}

			list, err := skills.ListSkills(skills.Options{ConfigFile: opts.configFile})
			if err != nil {
				return err
			}
			return renderer.RenderResult(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:               "show <name>",
		Short:             MsgSkillsShowShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: bundleNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer(cmd)
			if err != nil {
				return err
			}

			b, err := skills.ShowSkill(skills.Options{ConfigFile: opts.configFile}, args[0])
			if err != nil {
				return err
			}
			return renderer.RenderResult(b)
		},
	})

	return cmd
}

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	var (
		effective bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := genconfig.GenConfig(genconfig.Options{
				ConfigFile: opts.configFile,
				Effective:  effective,
				Write:      write,
			})
			if err != nil {
				return err
			}

			if write {
				renderer, err := opts.newRenderer(cmd)
				if err != nil {
					return err
				}
				if len(result.FilesWritten) == 0 {
					return renderer.RenderMessage(MsgConfigExists)
				}
				for _, path := range result.FilesWritten {
					if err := renderer.RenderMessage(fmt.Sprintf(MsgConfigWritten, path)); err != nil {
						return err
					}
				}
				return nil
			}

			// The TOML is the output contract; print it verbatim so it
			// can be piped into a file.
			fmt.Fprint(cmd.OutOrStdout(), result.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	cmd.MarkFlagsMutuallyExclusive("effective", "write")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dotsync version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
