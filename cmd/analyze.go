package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/pageviews-cli/internal/analysis"
	"github.com/KaramelBytes/pageviews-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaFormat     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Summarize the series: outlier band, monthly averages and distributions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(anaFormat))
		switch format {
		case "", "md", "markdown":
			format = "markdown"
		case "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json)", anaFormat)
		}
		raw, err := loadTable(args)
		if err != nil {
			return err
		}
		band := configuredBand()
		if err := band.Validate(); err != nil {
			return err
		}
		rep := analysis.BuildReport(raw, band)

		var out []byte
		if format == "json" {
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			out = append(b, '\n')
		} else {
			out = []byte(rep.Markdown())
		}

		// Decide where to write: --output path or stdout
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "markdown", "report format: markdown|json")
}
