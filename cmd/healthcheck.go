package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the export can be located and parsed",
	Long: `Check the health of chatgpt-export by verifying:
  • Export location (flag, config, environment or default paths)
  • Export readability (plain file, directory or zip)
  • Conversation parsing
  • Cache directory access

This command is useful for debugging configuration issues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, sectionStyle.Render("🔍 ChatGPT Export Health Check"))
		fmt.Fprintln(w)

		var (
			path   string
			src    *internal.ExportSource
			corpus *internal.Corpus
			report *internal.BuildReport
		)
		steps := []internal.ProgressStep{
			{Message: "Locating export", Fn: func() (err error) {
				path, err = exportLocation()
				return err
			}},
			{Message: "Reading export", Fn: func() (err error) {
				src, err = internal.LoadExport(path)
				return err
			}},
			{Message: "Parsing conversations", Fn: func() (err error) {
				if !json.Valid(src.Data) {
					return &internal.InvalidFormatError{Reason: "export is not valid JSON"}
				}
				corpus, report, err = internal.BuildCorpusWithReport(json.RawMessage(src.Data))
				return err
			}},
			{Message: "Checking cache directory", Fn: func() error {
				if cm := cacheManager(); cm != nil {
					return cm.EnsureCacheDir()
				}
				return nil
			}},
		}

		if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
			internal.PrintError(w, err.Error())
			return err
		}

		if verbose {
			fmt.Fprintf(w, "   Export: %s\n", src.Path)
			fmt.Fprintf(w, "   Root shape: %s\n", report.Shape)
			if cm := cacheManager(); cm != nil {
				fmt.Fprintf(w, "   Cache: %s\n", cm.GetCacheDir())
			}
		}
		if n := len(report.Skipped); n > 0 {
			internal.PrintWarning(w, fmt.Sprintf("%d record(s) skipped; run `chatgpt-export inspect` for details", n))
		}
		internal.PrintSuccess(w, fmt.Sprintf("Export OK: %d conversation(s), %d project(s)",
			len(corpus.Conversations), len(corpus.Projects)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
