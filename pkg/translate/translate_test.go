package translate

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/traductor/pkg/dictionary"
)

func buildIndex(t *testing.T, records ...dictionary.Record) *dictionary.Index {
	t.Helper()
	dict, err := dictionary.Load(records, "")
	require.NoError(t, err)
	return dict.Index
}

func perroIndex(t *testing.T) *dictionary.Index {
	return buildIndex(t, dictionary.NewRecord("espanol", "perro, can", "nahuatl", "chichi"))
}

func TestTokenizeIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"perro",
		"¡Hola, mundo!  ¿Cómo estás?",
		"«Xochitl» (flor)\t[ok]\n{fin}",
		"“comillas” y \"rectas\"...",
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, tok := range Tokenize(in) {
			b.WriteString(tok.Text)
		}
		assert.Equal(t, in, b.String())
	}
}

func TestTokenizeKinds(t *testing.T) {
	tokens := Tokenize("hola, mundo.")
	expected := []Token{
		{"hola", Word},
		{",", Punct},
		{" ", Space},
		{"mundo", Word},
		{".", Punct},
	}
	assert.Equal(t, expected, tokens)
	assert.Empty(t, Tokenize(""))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		description string
		input       string
		expected    string
	}{
		{"lower-cases", "PERRO", "perro"},
		{"strips accents", "Árbol", "arbol"},
		{"keeps precomposed ñ", "Niño", "niño"},
		{"keeps decomposed ñ", "nin\u0303o", "niño"},
		{"drops punctuation", "perro!", "perro"},
		{"drops inverted marks", "¡Hola", "hola"},
		{"keeps apostrophe and hyphen", "Ma'ax-tu", "ma'ax-tu"},
		{"keeps digits", "k'in2", "k'in2"},
		{"drops symbols", "café☕", "cafe"},
		{"trims", "  gato  ", "gato"},
		{"only symbols", "¡¿", ""},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestTranslatePhraseIdentityFallback(t *testing.T) {
	ix := buildIndex(t, dictionary.NewRecord("espanol", "dog", "nahuatl", "chiwi"))
	in := "¡Hola, mundo! (sin cambios)"
	assert.Equal(t, in, TranslatePhrase(in, dictionary.SpanishToIndigenous, ix))
}

func TestTranslatePhraseCapitalization(t *testing.T) {
	ix := buildIndex(t, dictionary.NewRecord("espanol", "dog", "nahuatl", "chiwi"))
	assert.Equal(t, "Chiwi", TranslatePhrase("Dog", dictionary.SpanishToIndigenous, ix))
	assert.Equal(t, "chiwi", TranslatePhrase("dog", dictionary.SpanishToIndigenous, ix))
	assert.Equal(t, "Dog", TranslatePhrase("Chiwi", dictionary.IndigenousToSpanish, ix))
}

func TestTranslatePhraseEndToEnd(t *testing.T) {
	ix := perroIndex(t)

	tests := []struct {
		description string
		input       string
		dir         dictionary.Direction
		expected    string
	}{
		{"capitalized exact hit", "Perro", dictionary.SpanishToIndigenous, "Chichi"},
		{"second variant", "can", dictionary.SpanishToIndigenous, "chichi"},
		{"trailing punctuation kept", "Perro!", dictionary.SpanishToIndigenous, "Chichi!"},
		// ¡ is not a separator, so it is part of the word and dropped with it
		{"inverted mark belongs to the word", "¡Perro!", dictionary.SpanishToIndigenous, "chichi!"},
		{"phrase", "perro y can.", dictionary.SpanishToIndigenous, "chichi y chichi."},
		// chichi was written last by the "can" variant
		{"reverse keeps last write", "chichi", dictionary.IndigenousToSpanish, "can"},
		{"plural through fuzzy scan", "perros", dictionary.SpanishToIndigenous, "chichi"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, TranslatePhrase(tt.input, tt.dir, ix))
		})
	}
}

func TestTranslatePhraseAccentedKey(t *testing.T) {
	ix := buildIndex(t, dictionary.NewRecord("espanol", "árbol", "nahuatl", "kuawitl"))

	// query tokens lose their accents, index keys keep them
	assert.Equal(t, "árbol", TranslatePhrase("árbol", dictionary.SpanishToIndigenous, ix))
	_, ok := ix.Lookup("árbol", dictionary.SpanishToIndigenous)
	assert.True(t, ok)
}

func TestTranslatePhraseSkipsFuzzyForEmptyKey(t *testing.T) {
	ix := buildIndex(t,
		dictionary.NewRecord("espanol", "perro", "maya", "peek'"),
		dictionary.NewRecord("espanol", "gato", "maya", "miis"),
	)
	assert.Equal(t, "¡¿", TranslatePhrase("¡¿", dictionary.SpanishToIndigenous, ix))
	assert.Equal(t, "¡¿ peek'", TranslatePhrase("¡¿ perro", dictionary.SpanishToIndigenous, ix))
}

func TestTranslatePhraseListing(t *testing.T) {
	ix := buildIndex(t,
		dictionary.NewRecord("espanol", "gato montés", "maya", "koj"),
		dictionary.NewRecord("espanol", "gato", "maya", "miis"),
	)

	tr := New(ix, DefaultConfig())
	resolved := tr.Resolve("gatos", dictionary.SpanishToIndigenous)
	require.Len(t, resolved, 1)
	assert.Equal(t, []string{"koj", "miis"}, resolved[0].Candidates)
	assert.Equal(t, "fuzzy", resolved[0].Matched)

	phrase, listing := tr.Translate("gatos", dictionary.SpanishToIndigenous)
	assert.True(t, listing)
	assert.Equal(t, "Possible translations:\n1. koj\n2. miis", phrase)

	es := New(ix, Config{MaxCombinations: 5, Locale: "es"})
	assert.Equal(t, "Traducciones posibles:\n1. Koj\n2. Miis", es.TranslatePhrase("Gatos", dictionary.SpanishToIndigenous))
}

func TestCombinationsCap(t *testing.T) {
	tokens := []TokenCandidates{
		{Candidates: []string{"a", "b"}},
		{Candidates: []string{" "}},
		{Candidates: []string{"c", "d"}},
		{Candidates: []string{" "}},
		{Candidates: []string{"e", "f"}},
	}

	combos, total := New(nil, DefaultConfig()).Combinations(tokens)
	assert.Equal(t, 8, total)
	assert.Equal(t, []string{"a c e", "a c f", "a d e", "a d f", "b c e"}, combos)

	combos, total = New(nil, Config{MaxCombinations: 10}).Combinations(tokens)
	assert.Equal(t, 8, total)
	assert.Len(t, combos, 8)
}

func TestCombinationsDeduplicate(t *testing.T) {
	tokens := []TokenCandidates{
		{Candidates: []string{"x", "x"}},
		{Candidates: []string{"y"}},
	}
	combos, total := New(nil, DefaultConfig()).Combinations(tokens)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"xy"}, combos)
}

func TestCombinationsTotalSaturates(t *testing.T) {
	tokens := make([]TokenCandidates, 70)
	for i := range tokens {
		tokens[i] = TokenCandidates{Candidates: []string{"0", "1"}}
	}
	combos, total := New(nil, DefaultConfig()).Combinations(tokens)
	assert.Equal(t, math.MaxInt, total)
	assert.Len(t, combos, DefaultMaxCombinations)
}
