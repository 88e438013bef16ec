package configspec

import "sort"

// Less is the precedence comparator: the "*" catch-all orders after
// everything else, then shorter patterns order before longer ones.
// First-applied wins downstream, so specific overrides must not be
// shadowed by general defaults.
func Less(a, b Rule) bool {
	if a.Pattern == Wildcard {
		return false
	}
	if b.Pattern == Wildcard {
		return true
	}
	return len(a.Pattern) < len(b.Pattern)
}

// Sort returns a new slice with the rules in application order. The
// sort is stable: rules the comparator cannot distinguish keep their
// original relative order.
func Sort(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}
