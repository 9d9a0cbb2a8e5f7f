package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}

		stats := internal.ComputeStats(corpus)
		w := cmd.OutOrStdout()
		if statsJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Fprintln(w, sectionStyle.Render("📊 Export statistics"))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Conversations: %s\n", countStyle.Render(fmt.Sprint(stats.ConversationCount)))
		fmt.Fprintf(w, "Projects:      %s\n", countStyle.Render(fmt.Sprint(stats.ProjectCount)))
		fmt.Fprintf(w, "Unassigned:    %s\n", countStyle.Render(fmt.Sprint(stats.UnassignedCount)))
		fmt.Fprintf(w, "Messages:      %s\n", countStyle.Render(fmt.Sprint(stats.MessageCount)))
		fmt.Fprintf(w, "Words:         %s\n", countStyle.Render(fmt.Sprint(stats.WordCount)))

		if models := stats.TopModels(); len(models) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, titleStyle.Render("Models"))
			for _, m := range models {
				fmt.Fprintf(w, "  %s %d\n", internal.PadRight(m.Model, 24), m.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
}
