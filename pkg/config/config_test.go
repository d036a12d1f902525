package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 5, c.Translator.MaxCombinations)
	assert.Equal(t, 0.2, c.Translator.MinScore)
	assert.Len(t, c.Languages, 6)

	l, ok := c.FindLanguage("NÁHUATL")
	assert.True(t, ok)
	assert.Equal(t, "nahuatl.JSON", l.File)
	assert.Equal(t, "maya.JSON", c.DatasetSource("maya"))
	assert.Equal(t, "/tmp/custom.csv", c.DatasetSource("/tmp/custom.csv"))
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[translator]
max_combinations = 3
locale = "es"

[dataset]
dir = "/srv/datasets"
watch = true

[[languages]]
name = "maya"
label = "Maya yucateco"
file = "maya.yaml"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Translator.MaxCombinations)
	assert.Equal(t, "es", c.Translator.Locale)
	assert.Equal(t, 5, c.Translator.TopN, "unset values keep defaults")
	assert.Equal(t, "/srv/datasets", c.Dataset.Dir)
	assert.True(t, c.Dataset.Watch)
	assert.Equal(t, []Language{{Name: "maya", Label: "Maya yucateco", File: "maya.yaml"}}, c.Languages)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_combinations has the wrong type, the rest is valid
	path := writeConfig(t, `
[translator]
max_combinations = "many"
top_n = 7
min_score = 0

[server]
http_addr = ":9000"

[[languages]]
file = "Otomi.csv"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Translator.MaxCombinations)
	assert.Equal(t, 7, c.Translator.TopN)
	assert.Equal(t, 0.0, c.Translator.MinScore)
	assert.Equal(t, ":9000", c.Server.HTTPAddr)
	assert.Equal(t, []Language{{Name: "otomi", Label: "otomi", File: "Otomi.csv"}}, c.Languages)
}

func TestLoadConfigUnparseable(t *testing.T) {
	path := writeConfig(t, "[translator\nthis is not toml")
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfigSanitizes(t *testing.T) {
	path := writeConfig(t, `
[translator]
max_combinations = 0
locale = "fr"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Translator.MaxCombinations)
	assert.Equal(t, "en", c.Translator.Locale)
}

func TestUpdateValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()

	zero := 0
	assert.Error(t, c.Update(path, &zero, nil, nil, nil))
	assert.NoFileExists(t, path)

	c = DefaultConfig()
	topN := 9
	locale := "es"
	require.NoError(t, c.Update(path, nil, &topN, nil, &locale))

	saved, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, saved.Translator.TopN)
	assert.Equal(t, "es", saved.Translator.Locale)
}

func TestCachePath(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, filepath.Join("/etc/traductor", "cache.db"), c.CachePath("/etc/traductor/config.toml"))
	c.Dataset.CachePath = "/var/cache/traductor.db"
	assert.Equal(t, "/var/cache/traductor.db", c.CachePath("/etc/traductor/config.toml"))
}
