package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent case-folds a name and strips separators, so "tag_name",
// "tag-name" and "TagName" all compare equal.
func NormalizeIdent(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
