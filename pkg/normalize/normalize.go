// Package normalize provides the text normalization primitives shared by
// the matching and catalog-building layers. Every key used for grouping,
// deduplication, or map lookup is produced here so the notion of "the same
// name" stays consistent across the pipeline.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases and trims surrounding whitespace.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripDiacritics removes combining marks using canonical decomposition
// (NFD, drop Mn, NFC), e.g. "Bogotá" -> "Bogota".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Key produces the grouping key used by the edit-distance clustering step:
// lower-cased, diacritics stripped, punctuation collapsed to single spaces.
func Key(s string) string {
	s = StripDiacritics(Fold(s))

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace && b.Len() > 0 {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// CategoryKey produces the canonical category key: lower-cased with
// everything that is not a letter, digit, or space removed. Emoji and
// punctuation in vendor category names ("🍔 Burgers!") do not create
// distinct categories.
func CategoryKey(s string) string {
	s = Fold(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
