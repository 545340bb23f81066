package render

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// LinePlot draws the values of t against their dates as a red line and
// writes the PNG to path.
func LinePlot(t *dataset.Table, path string, opt Options) (*Figure, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("line plot: %w", ErrNoData)
	}
	w, h := opt.size(1500, 500)

	xs := t.Dates()
	ys := t.Values()
	// go-chart needs two distinct X values to build a range
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:      LineTitle,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Page Views",
			Range: valueRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Page Views",
				Style:   chart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 1.5},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render line plot: %w", err)
	}
	fig := &Figure{
		Path:   path,
		Width:  w,
		Height: h,
		Panels: []Panel{{Title: LineTitle, XLabel: "Date", YLabel: "Page Views"}},
		png:    buf.Bytes(),
	}
	if err := fig.save(); err != nil {
		return nil, err
	}
	return fig, nil
}

// valueRange widens a flat series so the y axis has a non-zero span.
// It returns nil to let go-chart pick the range otherwise.
func valueRange(ys []float64) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if lo != hi {
		return nil
	}
	pad := math.Max(1, math.Abs(lo)*0.05)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
