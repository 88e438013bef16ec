package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkingCopy creates a real directory tree with a spec file,
// since the root command runs against the OS filesystem.
func setupWorkingCopy(t *testing.T, spec string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "special.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CONFIG_SPEC"), []byte(spec), 0644))
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_DryRun(t *testing.T) {
	dir := setupWorkingCopy(t, "element lib/ HEAD\nelement lib/special.txt v2\n")

	_, stderr, err := execute(t,
		filepath.Join(dir, "CONFIG_SPEC"), "-C", dir)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Would run: git -C "+filepath.Join(dir, "lib")+
		" checkout --recurse-submodules HEAD -- .")
	assert.Contains(t, stderr, "v2 -- special.txt")
	assert.Contains(t, stderr, MsgDryRunNotice)
	// Directory rule before the more specific file rule.
	assert.Less(t,
		strings.Index(stderr, "HEAD -- ."),
		strings.Index(stderr, "v2 -- special.txt"))
}

func TestRootCmd_Emit(t *testing.T) {
	dir := setupWorkingCopy(t, "element * HEAD\n")

	stdout, _, err := execute(t,
		filepath.Join(dir, "CONFIG_SPEC"), "-C", dir, "--emit")
	require.NoError(t, err)

	assert.Equal(t, "git -C "+dir+" checkout --recurse-submodules HEAD -- *\n", stdout)
}

func TestRootCmd_MissingSpec(t *testing.T) {
	dir := setupWorkingCopy(t, "")

	_, _, err := execute(t, filepath.Join(dir, "NO_SUCH_SPEC"), "-C", dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
	assert.Equal(t, errors.ExitSourceNotFound, errors.ExitCode(err))
}

func TestRootCmd_MissingDirectory(t *testing.T) {
	dir := setupWorkingCopy(t, "element vendor/ v9\n")
	spec := filepath.Join(dir, "CONFIG_SPEC")

	t.Run("checked", func(t *testing.T) {
		_, _, err := execute(t, spec, "-C", dir)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingDirectory))
		assert.Equal(t, errors.ExitMissingDirectory, errors.ExitCode(err))
	})

	t.Run("bypassed", func(t *testing.T) {
		_, stderr, err := execute(t, spec, "-C", dir, "--ignore-nonexisting")
		require.NoError(t, err)
		assert.Contains(t, stderr, filepath.Join(dir, "vendor"))
	})
}

func TestRootCmd_ApplyAndEmitExclusive(t *testing.T) {
	dir := setupWorkingCopy(t, "element * HEAD\n")

	_, _, err := execute(t,
		filepath.Join(dir, "CONFIG_SPEC"), "-C", dir, "--apply", "--emit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "git-configspec version")
}

func TestGenconfigCmd(t *testing.T) {
	stdout, _, err := execute(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[git]")
	assert.Contains(t, stdout, "checkout_args")
}
