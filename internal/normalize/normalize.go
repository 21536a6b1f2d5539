// Package normalize canonicalizes header labels and name fields so that
// spellings differing only in case, accents or spacing compare equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize upper-cases text, strips diacritics, trims it and collapses
// internal whitespace runs to a single space. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	upper := strings.ToUpper(text)

	// transform chains hold state, so one is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, upper)
	if err != nil {
		stripped = upper
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// NormalizeAll normalizes every entry of labels, preserving order.
func NormalizeAll(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = Normalize(l)
	}
	return out
}
