package cmd

import (
	"fmt"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var (
	searchCaseSensitive bool
	searchLimit         int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search conversation titles and messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}

		results := internal.Search(corpus, args[0], internal.SearchOptions{CaseSensitive: searchCaseSensitive})
		w := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("🔎 No conversations match %q", args[0])))
			return nil
		}

		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("🔎 %d conversation(s) match %q", len(results), args[0])))
		fmt.Fprintln(w)

		shown := results
		if searchLimit > 0 && searchLimit < len(shown) {
			shown = shown[:searchLimit]
		}
		for _, conv := range shown {
			fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(conv.Title), idStyle.Render(conv.ID))
			if conv.HasProject() {
				fmt.Fprintf(w, "  %s\n", projectStyle.Render(conv.ProjectName))
			}
			fmt.Fprintf(w, "  %s\n\n", dateStyle.Render(internal.Truncate(conv.Preview(cfg.PreviewLength), 120)))
		}
		if len(shown) < len(results) {
			fmt.Fprintln(w, dateStyle.Render(fmt.Sprintf("... (%d more)", len(results)-len(shown))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVarP(&searchCaseSensitive, "case-sensitive", "c", false, "Match case exactly")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results to show")
}
