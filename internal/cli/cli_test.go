package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/traductor/pkg/config"
	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/suggest"
	"github.com/bastiangx/traductor/pkg/translate"
)

func newTestPrompt(t *testing.T, input string) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	data := `[{"espanol": "perro, can", "nahuatl": "chichi"}, {"espanol": "pez", "nahuatl": "michin"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nahuatl.JSON"), []byte(data), 0o644))

	cfg := config.DefaultConfig()
	cfg.CLI.Color = false
	cfg.Dataset.Dir = dir
	session := translate.NewSession(dictionary.NewLoader(dir), translate.DefaultOptions())

	var out bytes.Buffer
	h := NewInputHandlerWithIO(session, cfg, dictionary.SpanishToIndigenous, strings.NewReader(input), &out)
	return h, &out
}

func TestPromptSession(t *testing.T) {
	input := strings.Join([]string{
		"perro",
		":load nahuatl",
		"Perro",
		":c pe",
		":dir",
		"chichi",
		":dir es",
		":say chichi",
		":q",
		"never reached",
	}, "\n")
	h, out := newTestPrompt(t, input)

	require.NoError(t, h.Start(context.Background()))
	got := out.String()

	assert.Contains(t, got, "Selecciona un diccionario primero.")
	assert.Contains(t, got, "Diccionario: nahuatl")
	assert.Contains(t, got, "Traducción: Chichi")
	assert.Contains(t, got, "100% Alta")
	assert.Contains(t, got, " 1. perro -> chichi")
	assert.Contains(t, got, " 2. pez -> michin")
	assert.Contains(t, got, "direction: indigena_es")
	assert.Contains(t, got, "Traducción: can")
	assert.Contains(t, got, "Audio: khikhi")
	assert.Contains(t, got, "Audio: chichi (es, es-ES)")
	assert.NotContains(t, got, "never reached")
	assert.Equal(t, dictionary.SpanishToIndigenous, h.Direction())
}

func TestPromptCommands(t *testing.T) {
	h, out := newTestPrompt(t, ":langs\n:info\n:dir sideways\n:bogus\n:load\n:reload\n")
	require.NoError(t, h.Start(context.Background()))
	got := out.String()

	assert.Contains(t, got, "nahuatl    Náhuatl (nahuatl.JSON)")
	assert.Contains(t, got, "No hay diccionario cargado.")
	assert.Contains(t, got, `unknown direction "sideways"`)
	assert.Contains(t, got, "unknown command :bogus")
	assert.Contains(t, got, "usage: :load <language>")
	assert.Contains(t, got, "Selecciona un diccionario primero.")
}

func TestRenderResultListing(t *testing.T) {
	st := NewStyles(false)
	res := translate.Result{
		Phrase:  "Possible translations:\n1. a\n2. b",
		Listing: true,
		Suggestions: []suggest.Suggestion{
			{Translation: "koj", Matched: "gato montés", Score: 0.85, Confidence: suggest.High},
		},
	}
	got := RenderResult(st, res)
	assert.Equal(t, "Sugerencias:\n 1. koj  (gato montés)  85% Alta\nTraducción:\nPossible translations:\n1. a\n2. b", got)
}

func TestRenderEmpty(t *testing.T) {
	st := NewStyles(false)
	assert.Equal(t, "Sin sugerencias.", RenderSuggestions(st, nil))
	assert.Equal(t, "Sin coincidencias.", RenderCompletions(st, nil))
	assert.Equal(t, "boom", RenderError(st, errors.New("boom")))
}

func TestRenderInfo(t *testing.T) {
	st := NewStyles(false)
	assert.Equal(t, "No hay diccionario cargado.", RenderInfo(st, translate.Info{}))

	info := translate.Info{
		Loaded:   true,
		Source:   "nahuatl.JSON",
		Language: "nahuatl",
		Stats:    dictionary.Stats{Records: 2, Entries: 3},
		Completion: map[dictionary.Direction]suggest.CompleterStats{
			dictionary.SpanishToIndigenous: {Keys: 3, MaxKeyLen: 5},
			dictionary.IndigenousToSpanish: {Keys: 2, MaxKeyLen: 6},
		},
		RankCache: suggest.CacheStats{Entries: 1, Capacity: 256, Hits: 4},
	}
	got := RenderInfo(st, info)
	assert.Contains(t, got, "claves: 3 es  2 nahuatl")
	assert.Contains(t, got, "caché: 1/256  aciertos: 4")
}
