package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bastiangx/traductor/internal/utils"
	"github.com/bastiangx/traductor/pkg/config"
	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/phonetic"
	"github.com/bastiangx/traductor/pkg/suggest"
	"github.com/bastiangx/traductor/pkg/translate"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title  lipgloss.Style
	Phrase lipgloss.Style
	Key    lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style
}

// NewStyles returns the color palette, or unstyled output when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		Phrase: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#c4a7e7"}),
		Muted: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		High: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#31748f"}),
		Medium: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}),
		Low: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#d7827e", Dark: "#ebbcba"}),
	}
}

// Confidence picks the style for a confidence tier.
func (s Styles) Confidence(c suggest.Confidence) lipgloss.Style {
	switch c {
	case suggest.High:
		return s.High
	case suggest.Medium:
		return s.Medium
	}
	return s.Low
}

// RenderSuggestions lists suggestions with their score and confidence.
func RenderSuggestions(st Styles, sugs []suggest.Suggestion) string {
	if len(sugs) == 0 {
		return st.Muted.Render("Sin sugerencias.")
	}
	var b strings.Builder
	b.WriteString(st.Title.Render("Sugerencias:"))
	for i, s := range sugs {
		fmt.Fprintf(&b, "\n%2d. %s  %s  %s",
			i+1,
			st.Phrase.Render(s.Translation),
			st.Muted.Render("("+s.Matched+")"),
			st.Confidence(s.Confidence).Render(fmt.Sprintf("%.0f%% %s", s.Score*100, s.Confidence.Spanish())),
		)
	}
	return b.String()
}

// RenderResult shows the suggestions followed by the phrase translation.
func RenderResult(st Styles, res translate.Result) string {
	var b strings.Builder
	b.WriteString(RenderSuggestions(st, res.Suggestions))
	b.WriteString("\n")
	b.WriteString(st.Title.Render("Traducción:"))
	if res.Listing {
		b.WriteString("\n")
	} else {
		b.WriteString(" ")
	}
	b.WriteString(st.Phrase.Render(res.Phrase))
	return b.String()
}

// RenderCompletions lists completions as key -> translation.
func RenderCompletions(st Styles, comps []suggest.Completion) string {
	if len(comps) == 0 {
		return st.Muted.Render("Sin coincidencias.")
	}
	lines := make([]string, len(comps))
	for i, c := range comps {
		lines[i] = fmt.Sprintf("%2d. %s -> %s", i+1, st.Key.Render(c.Key), st.Phrase.Render(c.Translation))
	}
	return strings.Join(lines, "\n")
}

// RenderUtterance shows the text a Spanish voice would read.
func RenderUtterance(st Styles, u phonetic.Utterance) string {
	return fmt.Sprintf("%s %s %s", st.Title.Render("Audio:"), st.Phrase.Render(u.Text), st.Muted.Render("("+u.Source+", "+u.Lang+")"))
}

// RenderInfo describes the loaded dictionary.
func RenderInfo(st Styles, info translate.Info) string {
	if !info.Loaded {
		return st.Muted.Render("No hay diccionario cargado.")
	}
	lines := []string{
		st.Title.Render("Diccionario: ") + st.Phrase.Render(info.Language),
		st.Muted.Render("fuente: ") + info.Source,
		st.Muted.Render("registros: ") + utils.FormatWithCommas(info.Stats.Records) +
			st.Muted.Render("  omitidos: ") + utils.FormatWithCommas(info.Stats.Skipped),
		st.Muted.Render("entradas: ") + utils.FormatWithCommas(info.Stats.Entries) +
			st.Muted.Render("  sobrescritas: ") + utils.FormatWithCommas(info.Stats.Overwrites),
		st.Muted.Render("claves: ") + utils.FormatWithCommas(info.Completion[dictionary.SpanishToIndigenous].Keys) + " es" +
			st.Muted.Render("  ") + utils.FormatWithCommas(info.Completion[dictionary.IndigenousToSpanish].Keys) + " " + info.Language,
		st.Muted.Render("caché: ") + fmt.Sprintf("%d/%d", info.RankCache.Entries, info.RankCache.Capacity) +
			st.Muted.Render("  aciertos: ") + utils.FormatWithCommas(info.RankCache.Hits),
	}
	if info.Cached {
		lines = append(lines, st.Error.Render("usando copia en caché"))
	}
	return strings.Join(lines, "\n")
}

// RenderLanguages lists the dataset catalogue, marking the current source.
func RenderLanguages(st Styles, langs []config.Language, current string) string {
	lines := make([]string, len(langs))
	for i, l := range langs {
		mark := "  "
		if current != "" && current == l.File {
			mark = "* "
		}
		lines[i] = fmt.Sprintf("%s%s %s", mark, st.Key.Render(fmt.Sprintf("%-10s", l.Name)), st.Muted.Render(l.Label+" ("+l.File+")"))
	}
	return strings.Join(lines, "\n")
}

// RenderError shows the user facing text of err.
func RenderError(st Styles, err error) string {
	return st.Error.Render(translate.Message(err))
}
