package executor_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chrillof/git-configspec/pkg/configspec"
	"github.com/chrillof/git-configspec/pkg/derive"
	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/chrillof/git-configspec/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepared(dir, rel, selector string) derive.PreparedCommand {
	return derive.PreparedCommand{
		WorkingDir:      dir,
		RelativePattern: rel,
		Selector:        selector,
		Rule:            configspec.Rule{Scope: configspec.ScopeElement, Pattern: rel, Selector: selector},
	}
}

func TestGitRender(t *testing.T) {
	t.Run("default_form", func(t *testing.T) {
		git := executor.NewGit("git", []string{"--recurse-submodules"}, time.Minute)

		line := git.Render(prepared("/repo/lib", "special.txt", "v2"))
		assert.Equal(t, "git -C /repo/lib checkout --recurse-submodules v2 -- special.txt", line)
	})

	t.Run("custom_binary_no_extra_args", func(t *testing.T) {
		git := executor.NewGit("/opt/git/bin/git", nil, time.Minute)

		line := git.Render(prepared("/repo", ".", "HEAD"))
		assert.Equal(t, "/opt/git/bin/git -C /repo checkout HEAD -- .", line)
	})

	t.Run("empty_binary_defaults_to_git", func(t *testing.T) {
		git := executor.NewGit("", nil, 0)

		line := git.Render(prepared("/repo", "*", "HEAD"))
		assert.Equal(t, "git -C /repo checkout HEAD -- *", line)
	})
}

// TestRenderRoundTrip re-parses a rendered command line and checks the
// selector and effective path survive unchanged.
func TestRenderRoundTrip(t *testing.T) {
	git := executor.NewGit("git", []string{"--recurse-submodules"}, time.Minute)
	cmd := prepared("/repo/lib", "special.txt", "v2")

	fields := strings.Fields(git.Render(cmd))
	require.GreaterOrEqual(t, len(fields), 7)

	// git -C <dir> checkout <flags...> <selector> -- <path>
	assert.Equal(t, "git", fields[0])
	assert.Equal(t, "-C", fields[1])
	assert.Equal(t, cmd.WorkingDir, fields[2])
	assert.Equal(t, "checkout", fields[3])

	sep := -1
	for i, f := range fields {
		if f == "--" {
			sep = i
		}
	}
	require.Positive(t, sep)
	assert.Equal(t, cmd.Selector, fields[sep-1])
	assert.Equal(t, cmd.RelativePattern, fields[sep+1])
}

func TestGitRun_Failure(t *testing.T) {
	// A binary that cannot exist forces the execution-failure path
	// without depending on a git installation.
	git := executor.NewGit("/nonexistent/definitely-not-git", nil, time.Second)

	err := git.Run(context.Background(), prepared("/repo", ".", "HEAD"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecutionFailure))
	assert.Contains(t, errors.GetErrorDetails(err)["command"], "-C /repo checkout")
}
