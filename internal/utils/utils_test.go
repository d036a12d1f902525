package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitals(t *testing.T) {
	tests := []struct {
		in    string
		lower string
		word  string
		want  string
	}{
		{"Pe", "pe", "perro", "Perro"},
		{"CAs", "cas", "casa", "CAsa"},
		{"ñan", "ñan", "ñandú", "ñandú"},
		{"ÑAN", "ñan", "ña", "ÑA"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lower, info := ProcessCapitals(tt.in)
			assert.Equal(t, tt.lower, lower)
			assert.Equal(t, tt.want, ApplyCapitals(tt.word, info))
		})
	}
}

func TestStartsUpper(t *testing.T) {
	assert.True(t, StartsUpper("Ñu"))
	assert.False(t, StartsUpper("¡Hola"))
	assert.False(t, StartsUpper(""))
	assert.Equal(t, "Ñu", CapitalizeFirst("ñu"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,345", FormatWithCommas(-12345))
}

func TestSeenFilter(t *testing.T) {
	f := NewSeenFilter()
	assert.True(t, f.ShouldInclude("chichi"))
	assert.False(t, f.ShouldInclude("chichi"))
	assert.True(t, f.ShouldInclude("Chichi"))
}

func TestTOMLRoundTrip(t *testing.T) {
	type section struct {
		Name  string  `toml:"name"`
		Count int     `toml:"count"`
		Score float64 `toml:"score"`
		On    bool    `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}
	path := filepath.Join(t.TempDir(), "nested", "c.toml")
	require.NoError(t, EnsureDir(filepath.Dir(path)))
	require.NoError(t, SaveTOMLFile(doc{Main: section{"x", 3, 0.5, true}}, path))
	assert.True(t, FileExists(path))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(data, "main")
	require.True(t, ok)

	name, _ := ExtractString(sec, "name")
	count, _ := ExtractInt64(sec, "count")
	score, _ := ExtractFloat(sec, "score")
	on, _ := ExtractBool(sec, "on")
	assert.Equal(t, "x", name)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0.5, score)
	assert.True(t, on)
}
