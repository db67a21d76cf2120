package domain

import "strings"

// NormalizeAnswer prepares a submitted or expected answer for comparison:
// surrounding whitespace is trimmed and the text is lowercased. Diacritics
// are preserved, so "año" and "ano" stay different words.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
