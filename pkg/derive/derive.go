// Package derive turns an ordered rule set into concrete, executable
// checkout commands, anchoring each rule at the right working-copy
// directory.
package derive

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/chrillof/git-configspec/pkg/configspec"
	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/chrillof/git-configspec/pkg/filesystem"
	"github.com/chrillof/git-configspec/pkg/logging"
)

// PreparedCommand is the fully resolved, directory-anchored form of
// one rule, ready for execution or rendering. It is consumed exactly
// once and never mutated.
type PreparedCommand struct {
	// WorkingDir is the directory the checkout must run in.
	WorkingDir string

	// RelativePattern is the rule pattern re-expressed relative to
	// WorkingDir ("." for a directory target).
	RelativePattern string

	// Selector is the version token, copied from the source rule.
	Selector string

	// Rule is the source rule, kept for reporting.
	Rule configspec.Rule
}

// Deriver computes prepared commands from sorted rules.
type Deriver struct {
	logger zerolog.Logger
	fs     filesystem.FS
}

// NewDeriver creates a deriver backed by the OS filesystem
func NewDeriver() *Deriver {
	return NewDeriverWithFS(filesystem.NewOS())
}

// NewDeriverWithFS creates a deriver using the given filesystem for
// existence and file-kind checks
func NewDeriverWithFS(fs filesystem.FS) *Deriver {
	return &Deriver{
		logger: logging.GetLogger("derive"),
		fs:     fs,
	}
}

// Derive maps each rule to a PreparedCommand, preserving order.
// Derivation is eager over the whole set: the first rule whose
// working directory does not exist fails the run with
// ErrMissingDirectory before anything executes, unless
// ignoreNonexisting is set.
func (d *Deriver) Derive(rules []configspec.Rule, baseDir string, ignoreNonexisting bool) ([]PreparedCommand, error) {
	commands := make([]PreparedCommand, 0, len(rules))

	for _, rule := range rules {
		resolved := rule.Pattern
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, resolved)
		}

		// A wildcard or an existing regular file is anchored one level
		// up; a directory pattern anchors at itself.
		var workingDir, relative string
		if d.isFileLike(resolved) {
			d.logger.Debug().Str("path", resolved).Msg("Pattern targets a file")
			workingDir = filepath.Dir(resolved)
			relative = filepath.Base(resolved)
		} else {
			d.logger.Debug().Str("path", resolved).Msg("Pattern targets a directory")
			workingDir = resolved
			relative = "."
		}

		if !d.isDir(workingDir) {
			if !ignoreNonexisting {
				return nil, errors.Newf(errors.ErrMissingDirectory,
					"non-existing directory: %s", workingDir).
					WithDetail("directory", workingDir).
					WithDetail("pattern", rule.Pattern)
			}
			d.logger.Debug().
				Str("directory", workingDir).
				Msg("Working directory missing, emitting anyway")
		}

		commands = append(commands, PreparedCommand{
			WorkingDir:      workingDir,
			RelativePattern: relative,
			Selector:        rule.Selector,
			Rule:            rule,
		})
	}

	return commands, nil
}

// isFileLike reports whether the resolved path must be treated as a
// file target: a bare "*" component, or a path that currently exists
// as a regular file.
func (d *Deriver) isFileLike(resolved string) bool {
	if filepath.Base(resolved) == configspec.Wildcard {
		return true
	}
	info, err := d.fs.Stat(resolved)
	return err == nil && info.Mode().IsRegular()
}

func (d *Deriver) isDir(path string) bool {
	info, err := d.fs.Stat(path)
	return err == nil && info.IsDir()
}
