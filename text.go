package furnex

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// specialCharRE matches everything except letters, digits,
	// underscores, whitespace, and basic punctuation worth keeping
	// for sentence segmentation.
	specialCharRE = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?$-]`)

	// whitespaceRE collapses runs of whitespace.
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// NormalizeText cleans extracted page text for downstream analysis:
// special characters are replaced with spaces and whitespace runs are
// collapsed to single spaces.
func NormalizeText(text string) string {
	text = specialCharRE.ReplaceAllString(text, " ")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// isNumeric reports whether s is non-empty and consists entirely of
// decimal digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
