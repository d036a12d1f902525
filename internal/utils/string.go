package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CapitalInfo holds the rune positions that were upper-case in a string
type CapitalInfo struct {
	positions []int
}

// ProcessCapitals extracts capital letter positions from a string and returns
// the lowercase version alongside them. Returns nil info when nothing is capitalized.
func ProcessCapitals(s string) (string, *CapitalInfo) {
	var info *CapitalInfo
	i := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			if info == nil {
				info = &CapitalInfo{positions: make([]int, 0, 4)}
			}
			info.positions = append(info.positions, i)
		}
		i++
	}
	return strings.ToLower(s), info
}

// ApplyCapitals upper-cases word at the rune positions recorded in info.
// Positions past the end of word are ignored.
func ApplyCapitals(word string, info *CapitalInfo) string {
	if info == nil {
		return word
	}
	runes := []rune(word)
	for _, pos := range info.positions {
		if pos < len(runes) {
			runes[pos] = unicode.ToUpper(runes[pos])
		}
	}
	return string(runes)
}

// StartsUpper reports whether the first rune of s is an upper-case letter.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// CapitalizeFirst upper-cases the first rune of s and leaves the rest untouched.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	if n < 1000 && n > -1000 {
		return str
	}
	var b strings.Builder
	start := 0
	if str[0] == '-' {
		b.WriteByte('-')
		start = 1
	}
	digits := str[start:]
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
