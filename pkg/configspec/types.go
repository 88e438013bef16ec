package configspec

// ScopeElement is the only rule scope this tool supports.
const ScopeElement = "element"

// Wildcard is the catch-all pattern. It matches everything and is
// always ordered after every other rule.
const Wildcard = "*"

// Rule represents one element rule from a config spec. Rules are
// immutable once parsed.
type Rule struct {
	// Scope is the rule kind keyword, always ScopeElement.
	Scope string

	// Pattern is the file or directory path the rule selects. Quotes
	// from the source line are already stripped; the pattern may
	// contain shell-style wildcards.
	Pattern string

	// Selector is the opaque version token (branch, tag, ref) handed
	// through to the checkout operation unmodified.
	Selector string
}

// Diagnostic reports one non-blank, non-comment line that did not
// match the rule grammar.
type Diagnostic struct {
	// Line is the 1-based line number in the source.
	Line int

	// Text is the original line content.
	Text string
}
