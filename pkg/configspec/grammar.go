package configspec

import (
	"regexp"
	"strings"
)

// Rule grammar: scope keyword, pattern (quoted or bare), selector,
// optional trailing clause. The quoted form exists so patterns can
// carry embedded whitespace; its quotes are stripped on extraction.
var ruleRe = regexp.MustCompile(`^\s*(element)\s+("[^"]+"|\S+)\s+(\S+)([ \t]+.*)?$`)

// IsBlank reports whether the line is empty or whitespace-only.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether the line's first non-whitespace character
// is '#'.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// MatchRule attempts to parse one line as an element rule. It returns
// the parsed rule and true on success. Blank and comment lines never
// match; the caller is expected to classify those first.
func MatchRule(line string) (Rule, bool) {
	m := ruleRe.FindStringSubmatch(line)
	if m == nil {
		return Rule{}, false
	}

	pattern := m[2]
	if strings.HasPrefix(pattern, `"`) {
		pattern = strings.Trim(pattern, `"`)
	}

	return Rule{
		Scope:    m[1],
		Pattern:  pattern,
		Selector: m[3],
	}, true
}
