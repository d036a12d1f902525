// Package phonetic approximates the pronunciation of indigenous-language text
// for a Spanish speech voice and builds the requests handed to speech playback.
package phonetic

import "strings"

// Rule replaces every occurrence of From with To.
type Rule struct {
	From string
	To   string
}

// rules are applied in order, each pass over the output of the previous one.
var rules = map[string][]Rule{
	"nahuatl": {
		{"x", "sh"},
		{"tl", "t-l"},
		{"tz", "ts"},
		{"cu", "kw"},
		{"hu", "w"},
		{"qu", "k"},
		{"c", "k"},
		{"z", "s"},
	},
	"mixteco": {
		{"dx", "dʲ"},
		{"tx", "tʲ"},
		{"ch", "tʃ"},
		{"ñ", "ɲ"},
		{"x", "ʃ"},
	},
	"zapoteco": {
		{"zh", "ʒ"},
		{"x", "ʃ"},
		{"qu", "k"},
		{"ch", "tʃ"},
	},
	"totonaco": {
		{"ch", "tʃ"},
		{"lh", "ɬ"},
		{"x", "ʃ"},
		{"qu", "k"},
	},
	"maya": {
		{"x", "sh"},
		{"ch", "tʃ"},
		{"tz", "ts"},
		{"pp", "pʼ"},
		{"tt", "tʼ"},
	},
}

// Phoneticize lower-cases text and applies the substitution passes of lang.
// Unknown languages, Spanish and Otomí are only lower-cased.
func Phoneticize(text, lang string) string {
	out := strings.ToLower(text)
	for _, r := range rules[lang] {
		out = strings.ReplaceAll(out, r.From, r.To)
	}
	return out
}
