package cmd

import (
	"fmt"

	"github.com/KaramelBytes/pageviews-cli/internal/analysis"
	"github.com/KaramelBytes/pageviews-cli/internal/render"
	"github.com/KaramelBytes/pageviews-cli/internal/visualizer"
	"github.com/spf13/cobra"
)

var (
	renderOnly   string
	renderOutDir string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Draw the line, bar and box charts of the cleaned series",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := visualizer.ParseKinds(renderOnly)
		if err != nil {
			return err
		}
		raw, err := loadTable(args)
		if err != nil {
			return err
		}
		outDir := cfg.OutputDir
		if renderOutDir != "" {
			outDir = renderOutDir
		}
		v := visualizer.New(raw,
			visualizer.WithLogger(logger),
			visualizer.WithOutputDir(outDir),
			visualizer.WithBand(configuredBand()),
			visualizer.WithRenderOptions(visualizer.Line, render.Options{Width: cfg.LineWidth, Height: cfg.LineHeight}),
			visualizer.WithRenderOptions(visualizer.Bar, render.Options{Width: cfg.BarWidth, Height: cfg.BarHeight}),
			visualizer.WithRenderOptions(visualizer.Box, render.Options{Width: cfg.BoxWidth, Height: cfg.BoxHeight}),
		)
		figs, err := v.DrawAll(kinds...)
		for i, fig := range figs {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s plot: %s (%dx%d)\n", kinds[i], fig.Path, fig.Width, fig.Height)
		}
		return err
	},
}

func configuredBand() analysis.Band {
	return analysis.Band{Lower: cfg.LowerQuantile, Upper: cfg.UpperQuantile}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderOnly, "only", "", "comma separated charts to draw: line,bar,box (default all)")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "directory for the PNG files (overrides output_dir)")
}
