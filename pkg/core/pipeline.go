// Package core wires the full pipeline: parse the spec file, sort the
// rules by precedence, derive prepared commands, and dispatch them to
// the executor according to the selected mode.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chrillof/git-configspec/pkg/configspec"
	"github.com/chrillof/git-configspec/pkg/derive"
	"github.com/chrillof/git-configspec/pkg/executor"
	"github.com/chrillof/git-configspec/pkg/filesystem"
	"github.com/chrillof/git-configspec/pkg/logging"
)

// Mode selects what happens with the derived commands.
type Mode string

const (
	// ModeDryRun reports each intended command on stderr without
	// executing anything.
	ModeDryRun Mode = "dry-run"

	// ModeApply executes the commands, aborting on the first failure.
	ModeApply Mode = "apply"

	// ModeEmit prints each rendered command line to stdout.
	ModeEmit Mode = "emit"
)

// RunOptions configures one pipeline run.
type RunOptions struct {
	// SpecPath is the config spec file to translate.
	SpecPath string

	// BaseDir is the directory rule patterns resolve against.
	BaseDir string

	// Mode defaults to ModeDryRun.
	Mode Mode

	// IgnoreNonexisting bypasses working-directory existence checks.
	IgnoreNonexisting bool

	// FS defaults to the OS filesystem.
	FS filesystem.FS

	// Executor defaults to a git executor with stock settings.
	Executor executor.Executor

	// Stdout receives emitted command lines; defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives dry-run reports; defaults to os.Stderr.
	Stderr io.Writer
}

// RunResult reports what a pipeline run produced.
type RunResult struct {
	Rules       []configspec.Rule
	Diagnostics []configspec.Diagnostic
	Commands    []derive.PreparedCommand

	// Executed counts commands that completed in apply mode.
	Executed int
}

// Run executes the pipeline. Commands are processed strictly in the
// sorted order; in apply mode the first failure aborts the remainder.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	logger := logging.GetLogger("core.pipeline")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Executor == nil {
		opts.Executor = executor.NewGit("git", []string{"--recurse-submodules"}, 5*time.Minute)
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Mode == "" {
		opts.Mode = ModeDryRun
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}

	parser := configspec.NewParserWithFS(opts.FS)
	rules, diags, err := parser.ParseFile(opts.SpecPath)
	if err != nil {
		return nil, err
	}

	sorted := configspec.Sort(rules)

	deriver := derive.NewDeriverWithFS(opts.FS)
	commands, err := deriver.Derive(sorted, opts.BaseDir, opts.IgnoreNonexisting)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Rules:       sorted,
		Diagnostics: diags,
		Commands:    commands,
	}

	logger.Info().
		Str("spec", opts.SpecPath).
		Str("mode", string(opts.Mode)).
		Int("rules", len(sorted)).
		Int("diagnostics", len(diags)).
		Msg("Pipeline derived commands")

	for _, cmd := range commands {
		switch opts.Mode {
		case ModeEmit:
			fmt.Fprintln(opts.Stdout, opts.Executor.Render(cmd))
		case ModeApply:
			if err := opts.Executor.Run(ctx, cmd); err != nil {
				logger.Error().
					Err(err).
					Str("workingDir", cmd.WorkingDir).
					Str("selector", cmd.Selector).
					Msg("Checkout failed, aborting remaining commands")
				return result, err
			}
			result.Executed++
		default:
			fmt.Fprintf(opts.Stderr, "Would run: %s\n", opts.Executor.Render(cmd))
		}
	}

	return result, nil
}
