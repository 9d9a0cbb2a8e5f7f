package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var (
	listProject    string
	listUnassigned bool
	listLimit      int
)

const (
	idColumn      = 36
	titleColumn   = 44
	projectColumn = 20
	countColumn   = 8
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Long: `List conversations, most recently updated first.

Use --project to restrict the list to one project (by name or id) and
--unassigned for conversations outside any project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listProject != "" && listUnassigned {
			return fmt.Errorf("--project and --unassigned are mutually exclusive")
		}

		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}

		conversations := corpus.Conversations
		switch {
		case listUnassigned:
			conversations = corpus.Unassigned
		case listProject != "":
			project := findProject(corpus, listProject)
			if project == nil {
				return fmt.Errorf("project not found: %s", listProject)
			}
			conversations = project.Conversations
		}

		if listLimit > 0 && listLimit < len(conversations) {
			conversations = conversations[:listLimit]
		}

		displayConversations(cmd.OutOrStdout(), conversations, cfg.Location())
		return nil
	},
}

// findProject matches a project by id first, then by name, ignoring case
func findProject(corpus *internal.Corpus, key string) *internal.Project {
	if p, ok := corpus.Projects[key]; ok {
		return p
	}
	for _, p := range corpus.ProjectList() {
		if strings.EqualFold(p.Name, key) {
			return p
		}
	}
	return nil
}

func displayConversations(w io.Writer, conversations []*internal.Conversation, loc *time.Location) {
	if len(conversations) == 0 {
		fmt.Fprintln(w, headerStyle.Render("📋 No conversations found"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("📋 Found %d conversation(s)", len(conversations))))
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Join([]string{
		titleStyle.Render(internal.PadRight("ID", idColumn)),
		titleStyle.Render(internal.PadRight("Title", titleColumn)),
		titleStyle.Render(internal.PadRight("Project", projectColumn)),
		titleStyle.Render(internal.PadRight("Messages", countColumn)),
		titleStyle.Render("Updated"),
	}, "  "))
	fmt.Fprintln(w, strings.Repeat("─", idColumn+titleColumn+projectColumn+countColumn+24))

	for _, conv := range conversations {
		project := "—"
		if conv.HasProject() {
			project = conv.ProjectName
		}
		fmt.Fprintln(w, strings.Join([]string{
			idStyle.Render(internal.PadRight(internal.Truncate(conv.ID, idColumn), idColumn)),
			internal.PadRight(internal.Truncate(conv.Title, titleColumn), titleColumn),
			projectStyle.Render(internal.PadRight(internal.Truncate(project, projectColumn), projectColumn)),
			countStyle.Render(internal.PadRight(strconv.Itoa(len(conv.Messages)), countColumn)),
			dateStyle.Render(formatDate(conv.UpdateTime, loc)),
		}, "  "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, idStyle.Render("💡 Tip: view one with `chatgpt-export show "+conversations[0].ID+"`"))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Only list conversations of this project (name or id)")
	listCmd.Flags().BoolVar(&listUnassigned, "unassigned", false, "Only list conversations outside any project")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of conversations to list")
}
