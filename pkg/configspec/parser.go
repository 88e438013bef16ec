package configspec

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chrillof/git-configspec/pkg/errors"
	"github.com/chrillof/git-configspec/pkg/filesystem"
	"github.com/chrillof/git-configspec/pkg/logging"
)

// Parser reads config spec lines and accumulates rules in encounter
// order. Unrecognized lines become diagnostics, never failures;
// ordering by precedence is Sort's job, not the parser's.
type Parser struct {
	logger zerolog.Logger
	fs     filesystem.FS
}

// NewParser creates a parser backed by the OS filesystem
func NewParser() *Parser {
	return NewParserWithFS(filesystem.NewOS())
}

// NewParserWithFS creates a parser reading through the given filesystem
func NewParserWithFS(fs filesystem.FS) *Parser {
	return &Parser{
		logger: logging.GetLogger("configspec.parser"),
		fs:     fs,
	}
}

// ParseLines parses a sequence of lines. It always succeeds: lines
// that are neither blank, comment, nor rule are returned as
// diagnostics and logged at warning level.
func (p *Parser) ParseLines(lines []string) ([]Rule, []Diagnostic) {
	var rules []Rule
	var diags []Diagnostic

	for i, line := range lines {
		lineNo := i + 1

		if IsBlank(line) || IsComment(line) {
			continue
		}

		rule, ok := MatchRule(line)
		if !ok {
			p.logger.Warn().
				Int("line", lineNo).
				Str("text", line).
				Msg("Expected rule")
			diags = append(diags, Diagnostic{Line: lineNo, Text: line})
			continue
		}

		p.logger.Debug().
			Int("line", lineNo).
			Str("pattern", rule.Pattern).
			Str("selector", rule.Selector).
			Msg("Parsed rule")
		rules = append(rules, rule)
	}

	return rules, diags
}

// ParseReader parses lines from a reader. The error is only non-nil
// when reading itself fails.
func (p *Parser) ParseReader(r io.Reader) ([]Rule, []Diagnostic, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrInternal, "failed to read config spec")
	}

	rules, diags := p.ParseLines(lines)
	return rules, diags, nil
}

// ParseFile reads and parses the config spec at path. A spec that
// cannot be opened fails with ErrSourceNotFound.
func (p *Parser) ParseFile(path string) ([]Rule, []Diagnostic, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrSourceNotFound,
			"cannot open config spec %q", path).WithDetail("path", path)
	}

	rules, diags := p.ParseLines(splitLines(string(data)))

	p.logger.Debug().
		Str("path", path).
		Int("rules", len(rules)).
		Int("diagnostics", len(diags)).
		Msg("Parsed config spec file")

	return rules, diags, nil
}

// splitLines splits file content on newlines, tolerating CRLF endings.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
