// Package testutil provides shared helpers for tests: an in-memory
// working copy and a recording executor.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/chrillof/git-configspec/pkg/derive"
	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/chrillof/git-configspec/pkg/filesystem"
)

// WorkingCopy is an in-memory directory tree with a config spec file,
// exposed through the filesystem abstraction.
type WorkingCopy struct {
	Afero    afero.Fs
	FS       filesystem.FS
	Root     string
	SpecPath string
}

// NewWorkingCopy builds an in-memory working copy rooted at /repo with
// the given spec content and extra paths. Paths ending in "/" become
// directories, the rest become files.
func NewWorkingCopy(t *testing.T, spec string, paths ...string) *WorkingCopy {
	t.Helper()

	mem := afero.NewMemMapFs()
	root := "/repo"
	require.NoError(t, mem.MkdirAll(root, 0755))

	specPath := root + "/CONFIG_SPEC"
	require.NoError(t, afero.WriteFile(mem, specPath, []byte(spec), 0644))

	for _, p := range paths {
		full := root + "/" + strings.TrimSuffix(p, "/")
		if strings.HasSuffix(p, "/") {
			require.NoError(t, mem.MkdirAll(full, 0755))
		} else {
			require.NoError(t, afero.WriteFile(mem, full, []byte("content"), 0644))
		}
	}

	return &WorkingCopy{
		Afero:    mem,
		FS:       filesystem.NewAferoFS(mem),
		Root:     root,
		SpecPath: specPath,
	}
}

// RecordingExecutor renders like git but records runs instead of
// shelling out. FailAt makes the n-th Run call (0-based) fail with an
// execution-failure error.
type RecordingExecutor struct {
	Ran    []derive.PreparedCommand
	FailAt int
}

// NewRecordingExecutor creates a recording executor that never fails
func NewRecordingExecutor() *RecordingExecutor {
	return &RecordingExecutor{FailAt: -1}
}

// Render implements executor.Executor
func (r *RecordingExecutor) Render(cmd derive.PreparedCommand) string {
	parts := []string{"git", "-C", cmd.WorkingDir, "checkout", "--recurse-submodules",
		cmd.Selector, "--", cmd.RelativePattern}
	return strings.Join(parts, " ")
}

// Run implements executor.Executor
func (r *RecordingExecutor) Run(_ context.Context, cmd derive.PreparedCommand) error {
	if r.FailAt >= 0 && len(r.Ran) == r.FailAt {
		return errors.Newf(errors.ErrExecutionFailure,
			"checkout of %q in %s failed", cmd.Selector, cmd.WorkingDir)
	}
	r.Ran = append(r.Ran, cmd)
	return nil
}
