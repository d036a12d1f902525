package translate

import (
	"strings"
	"unicode"
)

// TokenKind classifies a run of input text.
type TokenKind int

const (
	Word TokenKind = iota
	Space
	Punct
)

// Token is a maximal run of one kind. Concatenating every token's Text gives back the input.
type Token struct {
	Text string
	Kind TokenKind
}

// separators are the punctuation runes that split words, besides whitespace.
const separators = ".,!?;:()[]{}\"“”«»"

func kindOf(r rune) TokenKind {
	switch {
	case unicode.IsSpace(r):
		return Space
	case strings.ContainsRune(separators, r):
		return Punct
	default:
		return Word
	}
}

// Tokenize splits text into words, whitespace runs and punctuation runs.
func Tokenize(text string) []Token {
	var tokens []Token
	start := 0
	current := Word
	for i, r := range text {
		k := kindOf(r)
		if i == 0 {
			current = k
			continue
		}
		if k != current {
			tokens = append(tokens, Token{Text: text[start:i], Kind: current})
			start = i
			current = k
		}
	}
	if start < len(text) {
		tokens = append(tokens, Token{Text: text[start:], Kind: current})
	}
	return tokens
}
