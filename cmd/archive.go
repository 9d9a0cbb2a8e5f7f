package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var (
	archiveDB        string
	archiveListLimit int
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store conversations in a SQLite archive",
	Long: `Upsert every conversation of the export into a SQLite database.

Conversations are keyed by id, so archiving successive exports keeps one row
per conversation. Rows whose content did not change are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}

		a, path, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		var result internal.SaveResult
		err = internal.ShowProgress(cmd.Context(), "Archiving conversations", func() error {
			var saveErr error
			result, saveErr = a.SaveCorpus(corpus)
			return saveErr
		})
		if err != nil {
			return err
		}

		total, err := a.Count()
		if err != nil {
			return err
		}
		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf(
			"Archived to %s: %d new, %d updated, %d unchanged (%d total)",
			path, result.Inserted, result.Updated, result.Unchanged, total))
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.ListConversations(archiveListLimit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(w, headerStyle.Render("🗄  Archive is empty"))
			return nil
		}
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("🗄  %d archived conversation(s)", len(entries))))
		fmt.Fprintln(w)
		for _, e := range entries {
			project := "—"
			if e.ProjectName != "" {
				project = e.ProjectName
			}
			fmt.Fprintln(w, strings.Join([]string{
				idStyle.Render(internal.PadRight(internal.Truncate(e.ID, idColumn), idColumn)),
				internal.PadRight(internal.Truncate(e.Title, titleColumn), titleColumn),
				projectStyle.Render(internal.PadRight(internal.Truncate(project, projectColumn), projectColumn)),
				countStyle.Render(internal.PadRight(strconv.Itoa(e.Messages), countColumn)),
				dateStyle.Render(formatDate(e.UpdateTime, cfg.Location())),
			}, "  "))
		}
		return nil
	},
}

func openArchive() (*internal.Archive, string, error) {
	path := archiveDB
	if path == "" {
		path = cfg.ArchiveDB
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, "", &internal.StoreError{Op: "open", Err: err}
	}
	a, err := internal.OpenArchive(path)
	return a, path, err
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.PersistentFlags().StringVar(&archiveDB, "db", "", "Archive database (default from config)")
	archiveListCmd.Flags().IntVarP(&archiveListLimit, "limit", "n", 0, "Maximum number of conversations to list")
}
