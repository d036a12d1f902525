// Package similarity scores how close a query is to a dictionary text.
//
// The score is a small ladder of word-overlap rules rather than an edit distance:
//
//	1.0   identical after lower-casing and trimming
//	0.9   both multi-word and one contains the other
//	0.85  both multi-word and every query word appears in the text
//	0.7 + 0.1n   n query words appear verbatim in the text
//	0.3 + 0.1n   n query words overlap a text word as substrings (-0.2 if a query word has <= 2 runes)
//	0     otherwise
//
// The exact-word rung is not clamped: four matching words score 1.1.
// Scoring is directional, only the query's words are counted, so callers always
// pass the query first.
package similarity

import (
	"strings"
	"unicode/utf8"
)

const (
	Identical       = 1.0
	Contained       = 0.9
	AllWordsMatched = 0.85

	exactBase   = 0.7
	partialBase = 0.3
	perWord     = 0.1

	shortWordLen     = 2
	shortWordPenalty = 0.2
)

// Score compares query a against text b.
func Score(a, b string) float64 {
	a = strings.TrimSpace(strings.ToLower(a))
	b = strings.TrimSpace(strings.ToLower(b))
	if a == b {
		return Identical
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	if len(wordsA) > 1 && len(wordsB) > 1 {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return Contained
		}
		if everyWordIn(wordsA, wordsB) {
			return AllWordsMatched
		}
	}

	if exact := countMatches(wordsA, wordsB, exactWord); exact > 0 {
		return exactBase + perWord*float64(exact)
	}

	if partial := countMatches(wordsA, wordsB, overlapping); partial > 0 {
		penalty := 0.0
		if hasShortWord(wordsA) {
			penalty = shortWordPenalty
		}
		return partialBase + perWord*float64(partial) - penalty
	}

	return 0
}

func exactWord(q, w string) bool { return q == w }

func overlapping(q, w string) bool {
	return strings.Contains(w, q) || strings.Contains(q, w)
}

// countMatches counts the query words for which match holds against some text word.
func countMatches(query, text []string, match func(q, w string) bool) int {
	n := 0
	for _, q := range query {
		for _, w := range text {
			if match(q, w) {
				n++
				break
			}
		}
	}
	return n
}

func everyWordIn(query, text []string) bool {
	return countMatches(query, text, exactWord) == len(query)
}

func hasShortWord(words []string) bool {
	for _, w := range words {
		if utf8.RuneCountInString(w) <= shortWordLen {
			return true
		}
	}
	return false
}
