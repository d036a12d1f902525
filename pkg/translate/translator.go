// Package translate turns free-form text into candidate translations, token by token.
//
// Every word token is resolved to one or more candidates (exact dictionary hit,
// otherwise every value whose key shares a word-level substring with it, otherwise
// the token itself). Whitespace and punctuation pass through untouched, and the
// phrase is rebuilt as the cartesian product of the candidates.
package translate

import (
	"fmt"
	"math"
	"strings"

	"github.com/bastiangx/traductor/internal/utils"
	"github.com/bastiangx/traductor/pkg/dictionary"
)

// DefaultMaxCombinations bounds how many distinct phrases are enumerated.
const DefaultMaxCombinations = 5

// Config tunes phrase output.
type Config struct {
	// MaxCombinations caps the distinct combinations kept; enumeration stops there.
	MaxCombinations int
	// Locale selects the listing header language: "es" or "en".
	Locale string
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{MaxCombinations: DefaultMaxCombinations, Locale: "en"}
}

func (c Config) maxCombinations() int {
	if c.MaxCombinations <= 0 {
		return DefaultMaxCombinations
	}
	return c.MaxCombinations
}

func (c Config) listingHeader() string {
	if c.Locale == "es" {
		return "Traducciones posibles:"
	}
	return "Possible translations:"
}

// TokenCandidates is one input token with the replacements it may take.
type TokenCandidates struct {
	Original   string
	Candidates []string
	// Matched is how the candidates were found: "exact", "fuzzy", "identity" or "separator".
	Matched string
}

// Translator resolves phrases against one dictionary index.
type Translator struct {
	index *dictionary.Index
	cfg   Config
}

// New creates a translator over index.
func New(index *dictionary.Index, cfg Config) *Translator {
	return &Translator{index: index, cfg: cfg}
}

// TranslatePhrase translates text with the default config.
func TranslatePhrase(text string, dir dictionary.Direction, index *dictionary.Index) string {
	return New(index, DefaultConfig()).TranslatePhrase(text, dir)
}

// TranslatePhrase returns the single reconstruction of text, or a numbered
// listing of up to MaxCombinations alternatives when tokens are ambiguous.
func (t *Translator) TranslatePhrase(text string, dir dictionary.Direction) string {
	phrase, _ := t.Translate(text, dir)
	return phrase
}

// Translate is TranslatePhrase that also reports whether the output is a listing.
func (t *Translator) Translate(text string, dir dictionary.Direction) (string, bool) {
	combos, total := t.Combinations(t.Resolve(text, dir))
	if total == 1 {
		return combos[0], false
	}
	return FormatListing(t.cfg.listingHeader(), combos), true
}

// FormatListing renders alternatives as "header\n1. a\n2. b".
func FormatListing(header string, combos []string) string {
	var b strings.Builder
	b.WriteString(header)
	for i, c := range combos {
		fmt.Fprintf(&b, "\n%d. %s", i+1, c)
	}
	return b.String()
}

// Resolve tokenizes text and finds the candidates of every token.
func (t *Translator) Resolve(text string, dir dictionary.Direction) []TokenCandidates {
	tokens := Tokenize(text)
	resolved := make([]TokenCandidates, len(tokens))
	for i, tok := range tokens {
		if tok.Kind != Word {
			resolved[i] = TokenCandidates{Original: tok.Text, Candidates: []string{tok.Text}, Matched: "separator"}
			continue
		}
		resolved[i] = t.resolveWord(tok.Text, dir)
	}
	return resolved
}

func (t *Translator) resolveWord(word string, dir dictionary.Direction) TokenCandidates {
	tc := TokenCandidates{Original: word}
	key := Normalize(word)

	if value, ok := t.index.Lookup(key, dir); ok {
		tc.Candidates, tc.Matched = []string{value}, "exact"
	} else if key != "" {
		if values := t.fuzzy(key, dir); len(values) > 0 {
			tc.Candidates, tc.Matched = values, "fuzzy"
		}
	}

	if len(tc.Candidates) == 0 {
		tc.Candidates, tc.Matched = []string{word}, "identity"
		return tc
	}

	if utils.StartsUpper(word) {
		for i, c := range tc.Candidates {
			tc.Candidates[i] = utils.CapitalizeFirst(c)
		}
	}
	return tc
}

// fuzzy scans every key of the direction for a word that contains, or is
// contained in, a word of key. Values come back deduplicated in key order.
func (t *Translator) fuzzy(key string, dir dictionary.Direction) []string {
	queryWords := strings.Fields(key)
	filter := utils.NewSeenFilter()
	var values []string

	for _, candidate := range t.index.Keys(dir) {
		if candidate != key && !sharesWord(queryWords, strings.Fields(candidate)) {
			continue
		}
		value, _ := t.index.Lookup(candidate, dir)
		if filter.ShouldInclude(value) {
			values = append(values, value)
		}
	}
	return values
}

func sharesWord(query, words []string) bool {
	for _, q := range query {
		for _, w := range words {
			if strings.Contains(w, q) || strings.Contains(q, w) {
				return true
			}
		}
	}
	return false
}

// Combinations builds the cartesian product of candidates in token order.
// It returns at most MaxCombinations distinct phrases, in enumeration order,
// along with the total number of combinations (saturating at math.MaxInt).
func (t *Translator) Combinations(tokens []TokenCandidates) ([]string, int) {
	total := 1
	for _, tc := range tokens {
		n := len(tc.Candidates)
		if n > 0 && total > math.MaxInt/n {
			total = math.MaxInt
			break
		}
		total *= n
	}

	limit := t.cfg.maxCombinations()
	filter := utils.NewSeenFilter()
	combos := make([]string, 0, min(limit, total))
	parts := make([]string, len(tokens))

	var walk func(i int) bool
	walk = func(i int) bool {
		if i == len(tokens) {
			phrase := strings.Join(parts, "")
			if filter.ShouldInclude(phrase) {
				combos = append(combos, phrase)
			}
			return len(combos) < limit
		}
		for _, c := range tokens[i].Candidates {
			parts[i] = c
			if !walk(i + 1) {
				return false
			}
		}
		return true
	}
	walk(0)

	return combos, total
}
