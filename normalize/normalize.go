// Package normalize canonicalizes course titles and search queries.
//
// A canonical string has its stop words removed, every character other than
// ASCII letters, digits and spaces stripped, and is lowercased and trimmed.
// Stored clean titles are produced the same way, so a normalized query can be
// compared to them with plain equality.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Query returns the canonical form of a raw query. Empty input yields "".
func Query(raw string) string {
	s := RemoveStopwords(raw)
	s = RemoveSpecialCharacters(s)
	return strings.TrimSpace(toLower(s))
}

// RemoveStopwords drops whitespace-separated tokens that are stop words and
// joins the rest with single spaces.
func RemoveStopwords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		if !IsStopWord(word) {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// RemoveSpecialCharacters keeps ASCII letters, digits and spaces only.
func RemoveSpecialCharacters(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isKept(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isKept(r rune) bool {
	return r == ' ' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func toLower(s string) string {
	return strings.ToLower(s)
}

// Fold returns a caseless form of s for case-insensitive containment checks.
// A new Caser is created per call since Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
