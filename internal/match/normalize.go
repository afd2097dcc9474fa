package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching: it is
// case-folded and separators (_, -, spaces, dots) are dropped, so
// "count_buckets", "CountBuckets" and "count-buckets" compare equal.
func NormalizeIdent(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
