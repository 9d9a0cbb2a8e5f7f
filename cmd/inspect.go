package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/spf13/cobra"
)

var inspectSkipLimit int

type keyCount struct {
	key   string
	count int
}

// inspectCmd reports how the export was read without building anything else
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Diagnose how an export is parsed",
	Long: `Show where the conversation list was found, which fields the records
carry and why any records were skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadExportSource()
		if err != nil {
			return err
		}
		if !json.Valid(src.Data) {
			return &internal.InvalidFormatError{Reason: "export is not valid JSON"}
		}
		root := json.RawMessage(src.Data)

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, sectionStyle.Render("🔍 Export inspection"))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Source:  %s\n", src.Path)
		if src.Member != "" {
			fmt.Fprintf(w, "Member:  %s\n", src.Member)
		}
		fmt.Fprintf(w, "Size:    %d bytes\n", len(src.Data))

		_, report, buildErr := internal.BuildCorpusWithReport(root)
		if report.Shape != "" {
			fmt.Fprintf(w, "Root:    %s\n", report.Shape)
		}
		fmt.Fprintf(w, "Records: %d\n", report.Records)
		fmt.Fprintf(w, "Built:   %s\n", countStyle.Render(fmt.Sprint(report.Built)))
		fmt.Fprintf(w, "Skipped: %d\n", len(report.Skipped))

		if keys := recordKeyCounts(root); len(keys) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, titleStyle.Render("Record fields"))
			for _, k := range keys {
				fmt.Fprintf(w, "  %s %d/%d\n", internal.PadRight(k.key, 24), k.count, report.Records)
			}
		}

		if len(report.Skipped) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, titleStyle.Render("Skipped records"))
			for i, skip := range report.Skipped {
				if inspectSkipLimit > 0 && i == inspectSkipLimit {
					fmt.Fprintln(w, dateStyle.Render(fmt.Sprintf("  ... (%d more)", len(report.Skipped)-i)))
					break
				}
				fmt.Fprintf(w, "  %s\n", skip)
			}
		}

		return buildErr
	},
}

// recordKeyCounts counts in how many records each top-level field appears,
// most common first
func recordKeyCounts(root json.RawMessage) []keyCount {
	records, err := internal.NormalizeRoot(root)
	if err != nil {
		return nil
	}

	counts := make(map[string]int)
	for i, raw := range records {
		rec, err := internal.ParseRawRecord(i, raw)
		if err != nil {
			continue
		}
		seen := make(map[string]bool)
		for _, key := range rec.Keys() {
			if !seen[key] {
				seen[key] = true
				counts[key]++
			}
		}
	}

	keys := make([]keyCount, 0, len(counts))
	for key, n := range counts {
		keys = append(keys, keyCount{key: key, count: n})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].count != keys[j].count {
			return keys[i].count > keys[j].count
		}
		return keys[i].key < keys[j].key
	})
	return keys
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectSkipLimit, "skip-limit", 20, "Maximum number of skipped records to list (0 for all)")
}
