package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var showRaw bool

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show one conversation",
	Long: `Display a conversation as Markdown.

In a terminal the Markdown is rendered; use --raw (or pipe the output) to get
the Markdown source.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}

		conv, ok := corpus.Find(args[0])
		if !ok {
			return fmt.Errorf("conversation not found: %s", args[0])
		}

		md := conv.MarkdownIn(cfg.Location())
		w := cmd.OutOrStdout()
		if showRaw || !internal.IsTerminal(w) {
			_, err := fmt.Fprint(w, md)
			return err
		}

		rendered, err := internal.RenderMarkdown(md, internal.TerminalWidth(os.Stdout, 100))
		if err != nil {
			internal.LogDebug("Falling back to plain markdown: %v", err)
			rendered = md
		}
		_, err = fmt.Fprint(w, rendered)
		return err
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the Markdown source instead of rendering it")
}
