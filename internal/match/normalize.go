package match

import (
	"strings"
	"unicode"
)

// fieldSuffixes are stripped by NormalizeIdentWithSuffixStrip, longest first
// so "ids" is not read as "id" plus a stray "s".
var fieldSuffixes = []string{"timestamp", "ids", "utc", "id", "at"}

// NormalizeIdent folds an identifier to a spelling-independent key:
// first_name, firstName, FirstName and first-name all become "firstname".
// Word separators (_ - . and space) are dropped and letters lower-cased.
func NormalizeIdent(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

// SameIdent reports whether a and b name the same thing modulo spelling style.
func SameIdent(a, b string) bool {
	return NormalizeIdent(a) == NormalizeIdent(b)
}

// NormalizeIdentWithSuffixStrip normalizes and strips one common field-name
// suffix (id, ids, at, utc, timestamp), so customer_id ranks close to customer.
// A name that is only a suffix is left alone.
func NormalizeIdentWithSuffixStrip(s string) string {
	normalized := NormalizeIdent(s)

	for _, suffix := range fieldSuffixes {
		if stem, ok := strings.CutSuffix(normalized, suffix); ok && stem != "" {
			return stem
		}
	}

	return normalized
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	default:
		return false
	}
}
