package configspec_test

import (
	"strings"
	"testing"

	"github.com/chrillof/git-configspec/pkg/configspec"
	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/chrillof/git-configspec/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	t.Run("empty_input", func(t *testing.T) {
		parser := configspec.NewParser()

		rules, diags := parser.ParseLines(nil)
		assert.Empty(t, rules)
		assert.Empty(t, diags)
	})

	t.Run("comments_and_blanks_only", func(t *testing.T) {
		parser := configspec.NewParser()

		rules, diags := parser.ParseLines([]string{
			"# header comment",
			"",
			"   ",
			"  # indented comment",
		})
		assert.Empty(t, rules)
		assert.Empty(t, diags)
	})

	t.Run("rules_in_encounter_order", func(t *testing.T) {
		parser := configspec.NewParser()

		rules, diags := parser.ParseLines([]string{
			"element lib/special.txt v2",
			"element lib/ HEAD",
			"element * HEAD",
		})
		require.Empty(t, diags)
		require.Len(t, rules, 3)
		// The parser never reorders; precedence is Sort's job.
		assert.Equal(t, "lib/special.txt", rules[0].Pattern)
		assert.Equal(t, "lib/", rules[1].Pattern)
		assert.Equal(t, "*", rules[2].Pattern)
	})

	t.Run("bad_lines_become_diagnostics", func(t *testing.T) {
		parser := configspec.NewParser()

		rules, diags := parser.ParseLines([]string{
			"element * HEAD",
			"mkbranch dev",
			"element lib/ v1",
			"garbage",
		})
		assert.Len(t, rules, 2)
		require.Len(t, diags, 2)
		assert.Equal(t, configspec.Diagnostic{Line: 2, Text: "mkbranch dev"}, diags[0])
		assert.Equal(t, configspec.Diagnostic{Line: 4, Text: "garbage"}, diags[1])
	})
}

func TestParseReader(t *testing.T) {
	parser := configspec.NewParser()

	input := "# spec\nelement * HEAD\nelement \"dir with space/\" v3\n"
	rules, diags, err := parser.ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, rules, 2)
	assert.Equal(t, "dir with space/", rules[1].Pattern)
	assert.Equal(t, "v3", rules[1].Selector)
}

func TestParseFile(t *testing.T) {
	t.Run("reads_through_fs", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		content := "element lib/ HEAD\r\nelement * HEAD\r\n"
		require.NoError(t, afero.WriteFile(mem, "/repo/CONFIG_SPEC", []byte(content), 0644))

		parser := configspec.NewParserWithFS(filesystem.NewAferoFS(mem))
		rules, diags, err := parser.ParseFile("/repo/CONFIG_SPEC")
		require.NoError(t, err)
		assert.Empty(t, diags)
		// CRLF endings must not leak into selectors.
		require.Len(t, rules, 2)
		assert.Equal(t, "HEAD", rules[0].Selector)
	})

	t.Run("missing_file", func(t *testing.T) {
		parser := configspec.NewParserWithFS(filesystem.NewAferoFS(afero.NewMemMapFs()))

		_, _, err := parser.ParseFile("/nowhere/CONFIG_SPEC")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
	})
}
