/*
Package config manages the TOML config of the traductor CLI and servers.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/traductor/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Translator TranslatorConfig `toml:"translator"`
	Server     ServerConfig     `toml:"server"`
	Dataset    DatasetConfig    `toml:"dataset"`
	CLI        CliConfig        `toml:"cli"`
	Languages  []Language       `toml:"languages"`
}

// TranslatorConfig tunes phrase translation and suggestion ranking.
type TranslatorConfig struct {
	MaxCombinations int     `toml:"max_combinations"`
	TopN            int     `toml:"top_n"`
	MinScore        float64 `toml:"min_score"`
	Locale          string  `toml:"locale"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxQueryLen    int    `toml:"max_query_len"`
	MaxCompletions int    `toml:"max_completions"`
	HTTPAddr       string `toml:"http_addr"`
}

// DatasetConfig says where datasets come from.
type DatasetConfig struct {
	Dir             string `toml:"dir"`
	DefaultLanguage string `toml:"default_language"`
	CachePath       string `toml:"cache_path"`
	Watch           bool   `toml:"watch"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultDirection string `toml:"default_direction"`
	Color            bool   `toml:"color"`
}

// Language is one entry of the dataset catalogue.
type Language struct {
	Name  string `toml:"name"`
	Label string `toml:"label"`
	File  string `toml:"file"`
}

// DefaultLanguages returns the bundled catalogue.
func DefaultLanguages() []Language {
	return []Language{
		{Name: "mixteco", Label: "Mixteco", File: "mixteco.JSON"},
		{Name: "nahuatl", Label: "Náhuatl", File: "nahuatl.JSON"},
		{Name: "totonaco", Label: "Totonaco", File: "totonaco.JSON"},
		{Name: "zapoteco", Label: "Zapoteco", File: "zapoteco.JSON"},
		{Name: "maya", Label: "Maya", File: "maya.JSON"},
		{Name: "otomi", Label: "Otomi", File: "otomi.JSON"},
	}
}

// FindLanguage looks a language up by name or label, ignoring case.
func (c *Config) FindLanguage(name string) (Language, bool) {
	for _, l := range c.Languages {
		if strings.EqualFold(l.Name, name) || strings.EqualFold(l.Label, name) {
			return l, true
		}
	}
	return Language{}, false
}

// DatasetSource maps a language name or a dataset path to the source handed to the loader.
// Names from the catalogue resolve to their file; anything else is used as is.
func (c *Config) DatasetSource(nameOrPath string) string {
	if l, ok := c.FindLanguage(nameOrPath); ok {
		return l.File
	}
	return nameOrPath
}

// Validate reports values the translator cannot work with.
func (c *Config) Validate() error {
	if c.Translator.MaxCombinations < 1 {
		return fmt.Errorf("translator.max_combinations must be at least 1, got %d", c.Translator.MaxCombinations)
	}
	if c.Translator.MinScore < 0 {
		return fmt.Errorf("translator.min_score must not be negative, got %v", c.Translator.MinScore)
	}
	switch c.Translator.Locale {
	case "es", "en":
	default:
		return fmt.Errorf("translator.locale must be \"es\" or \"en\", got %q", c.Translator.Locale)
	}
	if c.Server.MaxQueryLen < 1 {
		return fmt.Errorf("server.max_query_len must be at least 1, got %d", c.Server.MaxQueryLen)
	}
	return nil
}

// GetConfigDir returns the config directory: the platform config dir when
// writable, then ~/.traductor, then the temp dir.
func GetConfigDir() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Errorf("Failed to resolve paths: %v", err)
		return "", err
	}
	return filepath.Dir(resolver.GetConfigPath("config.toml")), nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/traductor/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Translator: TranslatorConfig{
			MaxCombinations: 5,
			TopN:            5,
			MinScore:        0.2,
			Locale:          "en",
		},
		Server: ServerConfig{
			MaxQueryLen:    500,
			MaxCompletions: 32,
			HTTPAddr:       "127.0.0.1:8080",
		},
		Dataset: DatasetConfig{
			Dir:             "data",
			DefaultLanguage: "",
			CachePath:       "",
			Watch:           false,
		},
		CLI: CliConfig{
			DefaultDirection: "es",
			Color:            true,
		},
		Languages: DefaultLanguages(),
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Invalid values are replaced by their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	// [[languages]] in the file replaces the catalogue instead of merging into it
	catalogue := config.Languages
	config.Languages = nil

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	if len(config.Languages) == 0 {
		config.Languages = catalogue
	}
	config.sanitize()
	return config, nil
}

// sanitize resets every invalid value to its default, one field at a time.
func (c *Config) sanitize() {
	d := DefaultConfig()
	if c.Translator.MaxCombinations < 1 {
		log.Warnf("Invalid translator.max_combinations %d, using %d", c.Translator.MaxCombinations, d.Translator.MaxCombinations)
		c.Translator.MaxCombinations = d.Translator.MaxCombinations
	}
	if c.Translator.MinScore < 0 {
		log.Warnf("Invalid translator.min_score %v, using %v", c.Translator.MinScore, d.Translator.MinScore)
		c.Translator.MinScore = d.Translator.MinScore
	}
	if c.Translator.Locale != "es" && c.Translator.Locale != "en" {
		log.Warnf("Invalid translator.locale %q, using %q", c.Translator.Locale, d.Translator.Locale)
		c.Translator.Locale = d.Translator.Locale
	}
	if c.Server.MaxQueryLen < 1 {
		log.Warnf("Invalid server.max_query_len %d, using %d", c.Server.MaxQueryLen, d.Server.MaxQueryLen)
		c.Server.MaxQueryLen = d.Server.MaxQueryLen
	}
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "translator"); ok {
		extractTranslatorConfig(section, &config.Translator)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dataset"); ok {
		extractDatasetConfig(section, &config.Dataset)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if langs := extractLanguages(tempConfig); len(langs) > 0 {
		config.Languages = langs
	}
	config.sanitize()
	return config, nil
}

func extractTranslatorConfig(data map[string]any, tr *TranslatorConfig) {
	if val, ok := utils.ExtractInt64(data, "max_combinations"); ok {
		tr.MaxCombinations = val
	}
	if val, ok := utils.ExtractInt64(data, "top_n"); ok {
		tr.TopN = val
	}
	if val, ok := utils.ExtractFloat(data, "min_score"); ok {
		tr.MinScore = val
	}
	if val, ok := utils.ExtractString(data, "locale"); ok {
		tr.Locale = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_completions"); ok {
		server.MaxCompletions = val
	}
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		server.HTTPAddr = val
	}
}

func extractDatasetConfig(data map[string]any, ds *DatasetConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		ds.Dir = val
	}
	if val, ok := utils.ExtractString(data, "default_language"); ok {
		ds.DefaultLanguage = val
	}
	if val, ok := utils.ExtractString(data, "cache_path"); ok {
		ds.CachePath = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		ds.Watch = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_direction"); ok {
		cli.DefaultDirection = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// extractLanguages reads the [[languages]] array, skipping entries without a file.
func extractLanguages(data map[string]any) []Language {
	tables, ok := data["languages"].([]map[string]any)
	if !ok {
		return nil
	}
	var langs []Language
	for _, table := range tables {
		file, ok := utils.ExtractString(table, "file")
		if !ok || file == "" {
			continue
		}
		name, _ := utils.ExtractString(table, "name")
		label, _ := utils.ExtractString(table, "label")
		if name == "" {
			name = strings.ToLower(strings.TrimSuffix(file, filepath.Ext(file)))
		}
		if label == "" {
			label = name
		}
		langs = append(langs, Language{Name: name, Label: label, File: file})
	}
	return langs
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// CachePath returns the dataset cache location, defaulting to cache.db next to the config file.
func (c *Config) CachePath(configPath string) string {
	if c.Dataset.CachePath != "" {
		return c.Dataset.CachePath
	}
	if configPath == "" {
		return filepath.Join(os.TempDir(), utils.AppDirName, "cache.db")
	}
	return filepath.Join(filepath.Dir(configPath), "cache.db")
}

// Update changes the translator values and saves to file
func (c *Config) Update(configPath string, maxCombinations, topN *int, minScore *float64, locale *string) error {
	tr := &c.Translator
	if maxCombinations != nil {
		tr.MaxCombinations = *maxCombinations
	}
	if topN != nil {
		tr.TopN = *topN
	}
	if minScore != nil {
		tr.MinScore = *minScore
	}
	if locale != nil {
		tr.Locale = *locale
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return SaveConfig(c, configPath)
}
