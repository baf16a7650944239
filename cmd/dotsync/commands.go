package dotsync

import (
	"fmt"

	"github.com/dotsync/dotsync/internal/version"
	"github.com/dotsync/dotsync/pkg/cobrax/topics"
	"github.com/dotsync/dotsync/pkg/config"
	"github.com/dotsync/dotsync/pkg/git"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/dotsync/dotsync/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// NoColor reports whether --no-color was set when cmd's tree last executed.
func NoColor(cmd *cobra.Command) bool {
	noColor, err := cmd.Root().PersistentFlags().GetBool("no-color")
	return err == nil && noColor
}

// newRootCmd builds the command tree; a nil provider means the git CLI.
func newRootCmd(provider git.Provider) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		sorted    bool
		dir       string
		noPull    bool
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:     "dotsync [url]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{Verbosity: verbosity, NoColor: noColor})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.Repository.Dir = dir
			}
			if sorted {
				cfg.Mapping.Sorted = true
			}

			opts := SyncOptions{
				NoPull:   noPull,
				Config:   cfg,
				Provider: provider,
			}
			if len(args) == 1 {
				opts.URL = args[0]
			}

			result, err := Sync(cmd.Context(), opts)
			if result == nil || err != nil && len(result.Outcomes) == 0 {
				return err
			}

			if opts.URL != "" && !result.Cloned {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgURLIgnored, result.Root, opts.URL)
			}
			r := output.NewRenderer(cmd.OutOrStdout(), noColor).WithHome(result.Home)
			if rerr := r.Summary(result.Root, result.Outcomes); rerr != nil && err == nil {
				err = rerr
			}
			return err
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.Flags().BoolVar(&sorted, "sorted", false, MsgFlagSorted)
	rootCmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)
	rootCmd.Flags().BoolVar(&noPull, "no-pull", false, MsgFlagNoPull)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: MsgTopicsShort,
		Long:  MsgTopicsLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Name() != "help" || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
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
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
