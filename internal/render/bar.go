package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/KaramelBytes/pageviews-cli/internal/analysis"
	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BarPlot draws the mean value per (year, month) as grouped bars, one group
// per year and one bar per month in January..December order, and writes the
// PNG to path. Months without data leave their slot empty.
func BarPlot(t *dataset.Table, path string, opt Options) (*Figure, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("bar plot: %w", ErrNoData)
	}
	w, h := opt.size(1200, 600)
	pivot := analysis.MonthlyAverages(t)

	p := plot.New()
	p.X.Label.Text = "Years"
	p.Y.Label.Text = "Average Page Views"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Add(LegendTitle)

	years := make([]string, len(pivot.Years))
	for i, y := range pivot.Years {
		years[i] = strconv.Itoa(y)
	}
	// Leave roughly 30% of each year slot as gap between groups.
	slot := vg.Length(w) / dpi * vg.Inch * 0.7 / vg.Length(len(years))
	barWidth := slot / 12

	for m, name := range pivot.Columns {
		runs, err := monthBars(pivot.Month(m), barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar plot %s: %w", name, err)
		}
		for _, bars := range runs {
			bars.Color = paletteColor(m)
			bars.LineStyle.Width = 0
			bars.Offset = vg.Length(float64(m)-5.5) * barWidth
			p.Add(bars)
		}
		// Legend swatch only; months without data still get an entry.
		swatch, err := plotter.NewBarChart(plotter.Values{0}, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar plot %s: %w", name, err)
		}
		swatch.Color = paletteColor(m)
		swatch.LineStyle.Width = 0
		p.Legend.Add(name, swatch)
	}
	p.NominalX(years...)
	p.X.Min = -0.5
	p.X.Max = float64(len(years)) - 0.5
	p.Y.Min = math.Min(0, p.Y.Min)

	data, err := encodePlots(w, h, p)
	if err != nil {
		return nil, fmt.Errorf("bar plot: %w", err)
	}
	fig := &Figure{
		Path:   path,
		Width:  w,
		Height: h,
		Panels: []Panel{{
			XLabel:      "Years",
			YLabel:      "Average Page Views",
			XTicks:      years,
			LegendTitle: LegendTitle,
			Legend:      pivot.Columns[:],
		}},
		png: data,
	}
	if err := fig.save(); err != nil {
		return nil, err
	}
	return fig, nil
}

// monthBars turns one month's per-year means into bar charts covering the
// runs of years that have data. NaN cells get no bar, leaving the slot empty.
func monthBars(heights []float64, width vg.Length) ([]*plotter.BarChart, error) {
	var out []*plotter.BarChart
	for i := 0; i < len(heights); {
		if math.IsNaN(heights[i]) {
			i++
			continue
		}
		j := i
		for j < len(heights) && !math.IsNaN(heights[j]) {
			j++
		}
		bars, err := plotter.NewBarChart(plotter.Values(heights[i:j]), width)
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		out = append(out, bars)
		i = j
	}
	return out, nil
}
