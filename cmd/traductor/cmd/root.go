// Package cmd holds the traductor command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/traductor/internal/store"
	"github.com/bastiangx/traductor/internal/utils"
	"github.com/bastiangx/traductor/pkg/config"
	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/translate"
)

const (
	Version = "0.3.0"
	AppName = "traductor"
)

var (
	debugMode  bool
	configFlag string
	dataFlag   string
	langFlag   string
	dirFlag    string
	noCache    bool

	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           AppName,
	Short:         "Spanish <-> indigenous language dictionary translator",
	Long:          "Translates words and phrases between Spanish and Mexican indigenous languages using JSON, YAML, CSV or msgpack dictionaries.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugMode {
			log.SetLevel(log.DebugLevel)
			log.SetReportTimestamp(true)
		} else {
			log.SetLevel(log.WarnLevel)
		}

		var err error
		cfg, configPath, err = config.LoadConfigWithPriority(configFlag)
		if err != nil {
			return err
		}
		if dataFlag != "" {
			cfg.Dataset.Dir = dataFlag
		}
		if langFlag == "" {
			langFlag = cfg.Dataset.DefaultLanguage
		}
		if dirFlag == "" {
			dirFlag = cfg.CLI.DefaultDirection
		}
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&debugMode, "debug", "d", false, "Toggle debug logging")
	pf.StringVar(&configFlag, "config", "", "Path to a config.toml")
	pf.StringVar(&dataFlag, "data", "", "Directory holding the language datasets")
	pf.StringVarP(&langFlag, "lang", "l", "", "Language name, dataset path or URL to load")
	pf.StringVarP(&dirFlag, "dir", "r", "", "Direction: es (Spanish to indigenous) or ind (indigenous to Spanish)")
	pf.BoolVar(&noCache, "no-cache", false, "Do not read or write the dataset cache")

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// app is what every command that translates needs.
type app struct {
	session *translate.Session
	loader  *dictionary.Loader
	cache   *store.Store
}

// newApp builds a session from the loaded config, with the dataset cache
// attached unless --no-cache is set.
func newApp() (*app, error) {
	resolver, err := utils.NewPathResolver(dictionary.DataPatterns()...)
	if err != nil {
		return nil, fmt.Errorf("path resolver: %w", err)
	}
	dataDir := resolver.GetDataDir(cfg.Dataset.Dir)
	log.Debugf("Using data dir at: %s", dataDir)

	loader := dictionary.NewLoader(dataDir)
	session := translate.NewSession(loader, sessionOptions(cfg))
	a := &app{session: session, loader: loader}

	if !noCache {
		cache, err := store.NewStore(cfg.CachePath(configPath))
		if err != nil {
			log.Warnf("Dataset cache disabled: %v", err)
		} else {
			a.cache = cache
			session.SetCache(cache)
		}
	}
	return a, nil
}

func sessionOptions(c *config.Config) translate.Options {
	return translate.Options{
		Translator: translate.Config{
			MaxCombinations: c.Translator.MaxCombinations,
			Locale:          c.Translator.Locale,
		},
		TopN:     c.Translator.TopN,
		MinScore: c.Translator.MinScore,
	}
}

// loadLanguage loads the --lang dataset. required reports an error when none is set.
func (a *app) loadLanguage(ctx context.Context, required bool) error {
	if langFlag == "" {
		if required {
			return fmt.Errorf("no language selected: pass --lang or set dataset.default_language")
		}
		return nil
	}
	info, err := a.session.Load(ctx, cfg.DatasetSource(langFlag), "")
	if err != nil {
		return fmt.Errorf("%s: %s", langFlag, translate.Message(err))
	}
	if info.Cached {
		log.Warnf("Source %s unreachable, using cached copy", info.Source)
	}
	log.Debugf("Loaded %s: %d entries, %d skipped records", info.Source, info.Stats.Entries, info.Stats.Skipped)
	return nil
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Warnf("Closing cache: %v", err)
		}
	}
}

func direction() (dictionary.Direction, error) {
	return dictionary.ParseDirection(dirFlag)
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func colorEnabled() bool {
	return cfg.CLI.Color && os.Getenv("NO_COLOR") == ""
}
