package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/iksnae/chatgpt-export/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
	exportPath string
	noCache    bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg is loaded before every subcommand runs
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatgpt-export",
	Short: "Browse and convert ChatGPT data exports",
	Long: `A CLI tool to browse and convert the conversations.json file of a
ChatGPT data export.

The export is normalized into conversations grouped by project (folders,
custom GPTs and templates) and can be listed, searched, shown, exported
(Markdown, JSON, JSONL, YAML) or archived into a SQLite database.

Quick Start:
  chatgpt-export --export ~/Downloads/export list   # List conversations
  chatgpt-export show <conversation-id>             # View one conversation
  chatgpt-export export --format md --out notes     # Export as Markdown`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)
		if quiet {
			internal.SetQuiet(true)
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/chatgpt-export/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&exportPath, "export", "e", "", "Export directory, conversations.json or export zip")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Always rebuild conversations from the export")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
