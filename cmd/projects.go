package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Long:  `List the projects (folders, custom GPTs and templates) found in the export.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		projects := corpus.ProjectList()
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("📁 Found %d project(s)", len(projects))))
		fmt.Fprintln(w)

		if len(projects) > 0 {
			fmt.Fprintln(w, strings.Join([]string{
				titleStyle.Render(internal.PadRight("Name", titleColumn)),
				titleStyle.Render(internal.PadRight("ID", idColumn)),
				titleStyle.Render(internal.PadRight("Chats", countColumn)),
				titleStyle.Render(internal.PadRight("Messages", countColumn)),
				titleStyle.Render("Words"),
			}, "  "))
			for _, p := range projects {
				fmt.Fprintln(w, strings.Join([]string{
					projectStyle.Render(internal.PadRight(internal.Truncate(p.Name, titleColumn), titleColumn)),
					idStyle.Render(internal.PadRight(internal.Truncate(p.ID, idColumn), idColumn)),
					countStyle.Render(internal.PadRight(strconv.Itoa(len(p.Conversations)), countColumn)),
					internal.PadRight(strconv.Itoa(p.MessageCount()), countColumn),
					strconv.Itoa(p.WordCount()),
				}, "  "))
			}
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, dateStyle.Render(fmt.Sprintf("Unassigned conversations: %d", len(corpus.Unassigned))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
