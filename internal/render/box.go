package render

import (
	"fmt"

	"github.com/KaramelBytes/pageviews-cli/internal/analysis"
	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BoxPlot draws two box-and-whisker panels side by side: values grouped by
// year (trend) and by calendar month Jan..Dec (seasonality). The combined
// image is written to path.
func BoxPlot(t *dataset.Table, path string, opt Options) (*Figure, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("box plot: %w", ErrNoData)
	}
	w, h := opt.size(2000, 800)
	rows := analysis.SeasonalRows(t)

	left, yearTicks, err := boxPanel(YearBoxTitle, "Year", analysis.GroupByYear(rows))
	if err != nil {
		return nil, err
	}
	right, monthTicks, err := boxPanel(MonthBoxTitle, "Month", analysis.GroupByMonth(rows))
	if err != nil {
		return nil, err
	}

	data, err := encodePlots(w, h, left, right)
	if err != nil {
		return nil, fmt.Errorf("box plot: %w", err)
	}
	fig := &Figure{
		Path:   path,
		Width:  w,
		Height: h,
		Panels: []Panel{
			{Title: YearBoxTitle, XLabel: "Year", YLabel: "Page Views", XTicks: yearTicks},
			{Title: MonthBoxTitle, XLabel: "Month", YLabel: "Page Views", XTicks: monthTicks},
		},
		png: data,
	}
	if err := fig.save(); err != nil {
		return nil, err
	}
	return fig, nil
}

// boxPanel puts one box per group at x = group index. Groups without values
// keep their tick but get no box.
func boxPanel(title, xLabel string, groups []analysis.Group) (*plot.Plot, []string, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Page Views"

	ticks := make([]string, len(groups))
	for i, g := range groups {
		ticks[i] = g.Label
		if len(g.Values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(28), float64(i), plotter.Values(g.Values))
		if err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", xLabel, g.Label, err)
		}
		b.FillColor = paletteColor(i)
		p.Add(b)
	}
	p.NominalX(ticks...)
	p.X.Min = -0.5
	p.X.Max = float64(len(groups)) - 0.5
	return p, ticks, nil
}
