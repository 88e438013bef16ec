// Package executor runs or renders prepared checkout commands. The
// core never depends on a specific version-control binary, only on
// this contract: take a directory, a selector, and a relative path,
// and fail with a detectable status.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chrillof/git-configspec/pkg/derive"
	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/chrillof/git-configspec/pkg/logging"
)

// Executor abstracts the checkout primitive behind render and run
// operations.
type Executor interface {
	// Render returns the single-line external command form.
	Render(cmd derive.PreparedCommand) string

	// Run executes the command; a failed invocation returns an
	// ErrExecutionFailure error.
	Run(ctx context.Context, cmd derive.PreparedCommand) error
}

// Git shells out to an external git binary, performing a
// directory-scoped, recursive, selector-addressed checkout of one
// relative path.
type Git struct {
	logger       zerolog.Logger
	binary       string
	checkoutArgs []string
	timeout      time.Duration
}

// NewGit creates a git executor. checkoutArgs are inserted between
// "checkout" and the selector on every invocation.
func NewGit(binary string, checkoutArgs []string, timeout time.Duration) *Git {
	if binary == "" {
		binary = "git"
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Git{
		logger:       logging.GetLogger("executor.git"),
		binary:       binary,
		checkoutArgs: checkoutArgs,
		timeout:      timeout,
	}
}

// args builds the argument vector for one prepared command.
func (g *Git) args(cmd derive.PreparedCommand) []string {
	args := []string{"-C", cmd.WorkingDir, "checkout"}
	args = append(args, g.checkoutArgs...)
	args = append(args, cmd.Selector, "--", cmd.RelativePattern)
	return args
}

// Render implements Executor
func (g *Git) Render(cmd derive.PreparedCommand) string {
	return g.binary + " " + strings.Join(g.args(cmd), " ")
}

// Run implements Executor
func (g *Git) Run(ctx context.Context, cmd derive.PreparedCommand) error {
	args := g.args(cmd)

	g.logger.Info().
		Str("command", g.binary).
		Strs("args", args).
		Str("workingDir", cmd.WorkingDir).
		Msg("Executing checkout")

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	c := exec.CommandContext(ctx, g.binary, args...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()

	if stdout.Len() > 0 {
		// Show git's own progress output to the user.
		fmt.Print(stdout.String())
	}
	if stderr.Len() > 0 {
		g.logger.Debug().Str("stderr", stderr.String()).Msg("Checkout stderr")
	}

	if err != nil {
		return errors.Wrapf(err, errors.ErrExecutionFailure,
			"checkout of %q in %s failed", cmd.Selector, cmd.WorkingDir).
			WithDetail("command", g.Render(cmd)).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	return nil
}
