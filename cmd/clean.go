package cmd

import (
	"fmt"

	"github.com/KaramelBytes/pageviews-cli/internal/visualizer"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Drop outliers and report the cleaned row count",
	Long: `Drop the rows whose value is below the lower or above the upper quantile
of the whole series (2.5% and 97.5% by default, both bounds kept) and print
how many rows remain.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := loadTable(args)
		if err != nil {
			return err
		}
		band := configuredBand()
		if err := band.Validate(); err != nil {
			return err
		}
		v := visualizer.New(raw, visualizer.WithLogger(logger), visualizer.WithBand(band))
		cleaned, bounds := v.CleanData()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Number of rows in the cleaned table: %d\n", cleaned.Len())
		fmt.Fprintf(out, "Band: %.4g <= value <= %.4g (quantiles %.3f..%.3f, %d of %d rows kept)\n",
			bounds.Lower, bounds.Upper, band.Lower, band.Upper, cleaned.Len(), raw.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
