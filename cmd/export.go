package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/iksnae/chatgpt-export/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	outputDir    string
	exportID     string
	exportZip    bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations to files",
	Long: fmt.Sprintf(`Export conversations into one file per conversation.

Files are grouped into a directory per project; conversations outside any
project go to %s. Supported formats: %s.

Use --id to export a single conversation and --zip to write one archive
instead of a directory tree.`, export.UnassignedDir, strings.Join(export.Formats, ", ")),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if format == "" {
			format = cfg.DefaultFormat
		}
		exporter, err := export.NewExporter(format, cfg.Location())
		if err != nil {
			return err
		}

		corpus, err := loadCorpus(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		if exportID != "" {
			conv, ok := corpus.Find(exportID)
			if !ok {
				return fmt.Errorf("conversation not found: %s", exportID)
			}
			path, err := export.WriteOne(conv, exporter, outputDir)
			if err != nil {
				return err
			}
			internal.PrintSuccess(w, fmt.Sprintf("Exported %q to %s", conv.Title, path))
			return nil
		}

		var (
			written int
			dest    = outputDir
		)
		if exportZip {
			if !strings.EqualFold(filepath.Ext(dest), ".zip") {
				dest += ".zip"
			}
			err = internal.ShowProgress(cmd.Context(), "Writing "+dest, func() error {
				var zipErr error
				written, zipErr = writeZipFile(corpus, exporter, dest)
				return zipErr
			})
		} else {
			err = internal.ShowProgress(cmd.Context(), "Writing "+dest, func() error {
				var treeErr error
				written, treeErr = export.WriteTree(corpus, exporter, dest)
				return treeErr
			})
		}
		if err != nil {
			return err
		}

		internal.PrintSuccess(w, fmt.Sprintf("Exported %d conversation(s) to %s", written, dest))
		return nil
	},
}

func writeZipFile(corpus *internal.Corpus, exporter export.Exporter, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	n, err := export.WriteZip(corpus, exporter, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = &internal.ExportError{Format: exporter.Extension(), Path: path, Err: closeErr}
	}
	return n, err
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: md, json, jsonl, yaml (default from config, md)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory, or archive path with --zip")
	exportCmd.Flags().StringVar(&exportID, "id", "", "Export only the conversation with this id")
	exportCmd.Flags().BoolVar(&exportZip, "zip", false, "Write a zip archive instead of a directory tree")
}
