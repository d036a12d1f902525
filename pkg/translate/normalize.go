package translate

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keepRune reports whether r may appear in a lookup key. Apostrophes, commas and
// hyphens carry meaning in the indigenous orthographies (glottal stops, compounds).
func keepRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
		r == '\'' || r == ',' || r == '-'
}

var cleanKey = transform.Chain(
	runes.Remove(runes.Predicate(func(r rune) bool { return !keepRune(r) })),
	norm.NFC,
)

// isCombiningDiacritic matches the Combining Diacritical Marks block.
func isCombiningDiacritic(r rune) bool {
	return r >= 0x300 && r <= 0x36f
}

// Normalize turns a token into a dictionary lookup key: lower-case, accents
// stripped except on ñ, punctuation and symbols dropped, trimmed.
func Normalize(s string) string {
	composed := norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(composed))
	for _, r := range composed {
		if r == 'ñ' || r == 'Ñ' {
			b.WriteRune(r)
			continue
		}
		for _, d := range norm.NFD.String(string(r)) {
			if !isCombiningDiacritic(d) {
				b.WriteRune(d)
			}
		}
	}

	cleaned, _, err := transform.String(cleanKey, b.String())
	if err != nil {
		cleaned = b.String()
	}
	return strings.TrimSpace(strings.ToLower(cleaned))
}
