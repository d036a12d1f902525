package phonetic

import (
	"strings"

	"github.com/bastiangx/traductor/pkg/dictionary"
)

// Spanish is the language code of Spanish text.
const Spanish = "es"

// VoiceLang is the voice every utterance is read with.
const VoiceLang = "es-ES"

// Utterance is what speech playback needs to read a text aloud.
type Utterance struct {
	Text   string  `json:"text" msgpack:"text"`
	Lang   string  `json:"lang" msgpack:"lang"`
	Rate   float64 `json:"rate" msgpack:"rate"`
	Pitch  float64 `json:"pitch" msgpack:"pitch"`
	Volume float64 `json:"volume" msgpack:"volume"`
	// Source is the language the text is written in.
	Source string `json:"source" msgpack:"source"`
}

// NewUtterance prepares text written in lang for a Spanish voice. Spanish text
// is read as is, anything else is phoneticized first.
func NewUtterance(text, lang string) Utterance {
	u := Utterance{
		Text:   text,
		Lang:   VoiceLang,
		Rate:   0.8,
		Pitch:  1.0,
		Volume: 1.0,
		Source: lang,
	}
	if lang != Spanish {
		u.Text = Phoneticize(text, lang)
	}
	return u
}

// AudioLanguages returns the languages of the query and of its translation
// for a request in direction dir against a dictionary of language lang.
func AudioLanguages(dir dictionary.Direction, lang string) (original, translation string) {
	if dir == dictionary.IndigenousToSpanish {
		return lang, Spanish
	}
	return Spanish, lang
}

// Voice is a speech voice offered by the playback side.
type Voice struct {
	Name string `json:"name" msgpack:"name"`
	Lang string `json:"lang" msgpack:"lang"`
}

// SelectVoice picks the first Spanish voice, matching "es" or "ES" anywhere in its language tag.
func SelectVoice(voices []Voice) (Voice, bool) {
	for _, v := range voices {
		if strings.Contains(v.Lang, "es") || strings.Contains(v.Lang, "ES") {
			return v, true
		}
	}
	return Voice{}, false
}
