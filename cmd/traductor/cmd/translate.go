package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bastiangx/traductor/internal/cli"
)

var (
	jsonOutput    bool
	suggestN      int
	completeLimit int
	spokenIsTrans bool
)

var translateCmd = &cobra.Command{
	Use:     "translate <text>...",
	Aliases: []string{"t"},
	Short:   "Translate a word or phrase",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.loadLanguage(cmd.Context(), true); err != nil {
			return err
		}
		dir, err := direction()
		if err != nil {
			return err
		}

		res, err := a.session.Translate(joinArgs(args), dir)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(res)
		}
		fmt.Println(cli.RenderResult(cli.NewStyles(colorEnabled()), res))
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <text>...",
	Short: "Rank dictionary entries similar to the text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.loadLanguage(cmd.Context(), true); err != nil {
			return err
		}
		dir, err := direction()
		if err != nil {
			return err
		}

		sugs, err := a.session.Suggest(joinArgs(args), dir, suggestN)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(sugs)
		}
		fmt.Println(cli.RenderSuggestions(cli.NewStyles(colorEnabled()), sugs))
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <prefix>",
	Short: "List dictionary keys starting with a prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.loadLanguage(cmd.Context(), true); err != nil {
			return err
		}
		dir, err := direction()
		if err != nil {
			return err
		}

		limit := completeLimit
		if limit <= 0 {
			limit = cfg.Server.MaxCompletions
		}
		comps, err := a.session.Complete(args[0], dir, limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(comps)
		}
		fmt.Println(cli.RenderCompletions(cli.NewStyles(colorEnabled()), comps))
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <text>...",
	Short: "Show the speech request for a text",
	Long:  "Prints the text a Spanish voice would read. Indigenous-language text is phoneticized first.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.loadLanguage(cmd.Context(), true); err != nil {
			return err
		}
		dir, err := direction()
		if err != nil {
			return err
		}

		u, err := a.session.Utterance(joinArgs(args), dir, spokenIsTrans)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(u)
		}
		fmt.Println(cli.RenderUtterance(cli.NewStyles(colorEnabled()), u))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{translateCmd, suggestCmd, completeCmd, speakCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	}
	suggestCmd.Flags().IntVarP(&suggestN, "top", "n", 0, "Number of suggestions (default from config)")
	completeCmd.Flags().IntVar(&completeLimit, "limit", 0, "Maximum completions (default from config)")
	speakCmd.Flags().BoolVar(&spokenIsTrans, "translated", false, "Text is a translation rather than the query")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
