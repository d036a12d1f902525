package cmd

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/traductor/internal/cli"
	"github.com/bastiangx/traductor/internal/store"
	"github.com/bastiangx/traductor/internal/utils"
	"github.com/bastiangx/traductor/pkg/config"
)

const gh = "https://github.com/bastiangx/traductor"

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the configured language datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := ""
		if l, ok := cfg.FindLanguage(langFlag); ok {
			current = l.File
		}
		fmt.Println(cli.RenderLanguages(cli.NewStyles(colorEnabled()), cfg.Languages, current))
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the dataset cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			entries, err := s.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("cache is empty:", s.Path())
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%-40s %8s records %10s bytes  %s\n",
					e.Source, utils.FormatWithCommas(e.Records), utils.FormatWithCommas(e.Bytes),
					e.SavedAt.Local().Format(time.DateTime))
			}
			return nil
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [source]",
	Short: "Remove one cached dataset, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			if len(args) == 1 {
				source := cfg.DatasetSource(args[0])
				if err := s.Delete(source); err != nil {
					return err
				}
				fmt.Println("removed", source)
				return nil
			}
			n, err := s.Clear()
			if err != nil {
				return err
			}
			fmt.Printf("removed %d cached datasets\n", n)
			return nil
		})
	},
}

func withStore(fn func(*store.Store) error) error {
	s, err := store.NewStore(cfg.CachePath(configPath))
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

var (
	setMaxCombinations int
	setTopN            int
	setMinScore        float64
	setLocale          string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("#", config.GetActiveConfigPath(configPath))
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change translator settings and save them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return fmt.Errorf("no writable config file")
		}
		var (
			maxComb, topN *int
			minScore      *float64
			locale        *string
		)
		flags := cmd.Flags()
		if flags.Changed("max-combinations") {
			maxComb = &setMaxCombinations
		}
		if flags.Changed("top") {
			topN = &setTopN
		}
		if flags.Changed("min-score") {
			minScore = &setMinScore
		}
		if flags.Changed("locale") {
			locale = &setLocale
		}
		if err := cfg.Update(configPath, maxComb, topN, minScore, locale); err != nil {
			return err
		}
		fmt.Println("saved", configPath)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Rewrite the default config file with built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.RebuildConfigFile(); err != nil {
			return err
		}
		fmt.Println("rebuilt", config.GetActiveConfigPath(""))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ Traductor ] Spanish <-> indigenous language dictionaries")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available commands")
		logger.Print("Github Repo", "gh", gh)
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	f := configSetCmd.Flags()
	f.IntVar(&setMaxCombinations, "max-combinations", 0, "Listing cap for ambiguous phrases")
	f.IntVar(&setTopN, "top", 0, "Suggestions shown per query")
	f.Float64Var(&setMinScore, "min-score", 0, "Suggestions must score above this")
	f.StringVar(&setLocale, "locale", "", "Listing header language: es or en")
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
}
