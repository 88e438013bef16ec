package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chrillof/git-configspec/internal/version"
	"github.com/chrillof/git-configspec/pkg/config"
	"github.com/chrillof/git-configspec/pkg/core"
	"github.com/chrillof/git-configspec/pkg/executor"
	"github.com/chrillof/git-configspec/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity         int
		apply             bool
		emit              bool
		ignoreNonexisting bool
		baseDir           string
	)

	rootCmd := &cobra.Command{
		Use:     "git-configspec [CONFIG_SPEC]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			specPath := cfg.Spec.Filename
			if len(args) > 0 {
				specPath = args[0]
			}

			mode := core.ModeDryRun
			switch {
			case apply:
				mode = core.ModeApply
			case emit:
				mode = core.ModeEmit
			}

			result, err := core.Run(cmd.Context(), core.RunOptions{
				SpecPath:          specPath,
				BaseDir:           baseDir,
				Mode:              mode,
				IgnoreNonexisting: ignoreNonexisting,
				Executor:          newGitExecutor(cfg),
				Stdout:            cmd.OutOrStdout(),
				Stderr:            cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			log.Info().
				Int("rules", len(result.Rules)).
				Int("diagnostics", len(result.Diagnostics)).
				Int("executed", result.Executed).
				Msg("Run finished")

			if mode == core.ModeDryRun && len(result.Commands) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), MsgDryRunNotice)
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.Flags().BoolVar(&apply, "apply", false, MsgFlagApply)
	rootCmd.Flags().BoolVar(&emit, "emit", false, MsgFlagEmit)
	rootCmd.Flags().BoolVar(&ignoreNonexisting, "ignore-nonexisting", false, MsgFlagIgnore)
	rootCmd.Flags().StringVarP(&baseDir, "directory", "C", ".", MsgFlagBasedir)
	rootCmd.MarkFlagsMutuallyExclusive("apply", "emit")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenconfigCmd())

	return rootCmd
}

func newGitExecutor(cfg *config.Config) executor.Executor {
	return executor.NewGit(cfg.Git.Binary, cfg.Git.CheckoutArgs, cfg.Git.ExecTimeout())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "git-configspec version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}

func newGenconfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenconfigShort,
		Long:  MsgGenconfigLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# git-configspec configuration (place in %s)\n", config.UserConfigPath())
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
