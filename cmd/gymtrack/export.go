// ABOUTME: CLI command for exporting recent training.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/gymtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportRange  string
)

var exportCmd = &cobra.Command{
	Use:   "export [format]",
	Short: "Export recent workouts",
	Long: `Export completed workouts from a recent period with a training summary.

RANGES:

  1week, 2weeks, 4weeks, 8weeks

FORMATS:

  json       Full JSON export (default)
  yaml       YAML export (human-readable)
  markdown   Training log with a summary table (good for sharing with a coach or an AI)

EXAMPLES:

  gymtrack export                              # Last 4 weeks as JSON
  gymtrack export yaml --range 8weeks
  gymtrack export markdown -o training.md`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := "json"
		if len(args) == 1 {
			format = args[0]
		}

		r, err := storage.ParseExportRange(exportRange)
		if err != nil {
			return err
		}

		export, err := repo.Export(cmd.Context(), r)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = export.ToJSON()
		case "yaml":
			data, err = export.ToYAML()
		case "markdown", "md":
			data = []byte(export.ToMarkdown(weightUnit))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(cmd.OutOrStdout(), "Exported %d workouts to %s", export.Summary.TotalWorkouts, exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportRange, "range", "r", string(storage.Range4Weeks), "period to export")
	rootCmd.AddCommand(exportCmd)
}
