// Package render draws the page-view charts and writes them as PNG files.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/KaramelBytes/pageviews-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default artifact names.
const (
	LineFile = "line_plot.png"
	BarFile  = "bar_plot.png"
	BoxFile  = "box_plot.png"
)

// Chart text.
const (
	LineTitle     = "Daily freeCodeCamp Forum Page Views 5/2016-12/2019"
	YearBoxTitle  = "Year-wise Box Plot (Trend)"
	MonthBoxTitle = "Month-wise Box Plot (Seasonality)"
	LegendTitle   = "Months"
)

// dpi maps pixel sizes onto gonum/plot lengths.
const dpi = 100

// ErrNoData is returned when asked to draw an empty table.
var ErrNoData = errors.New("no data to plot")

// Options sets the output size in pixels. Zero values use the per-chart default.
type Options struct {
	Width  int
	Height int
}

func (o Options) size(defW, defH int) (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defW
	}
	if h <= 0 {
		h = defH
	}
	return w, h
}

// Panel describes one set of axes on a figure.
type Panel struct {
	Title       string
	XLabel      string
	YLabel      string
	XTicks      []string
	LegendTitle string
	Legend      []string
}

// Figure is a rendered chart: where it was written, what it shows, and the
// encoded PNG.
type Figure struct {
	Path   string
	Width  int
	Height int
	Panels []Panel
	png    []byte
}

// Bytes returns the encoded PNG.
func (f *Figure) Bytes() []byte { return f.png }

// WriteTo writes the encoded PNG to w.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.png)
	return int64(n), err
}

func (f *Figure) save() error {
	if err := utils.SafeWriteFile(f.Path, f.png); err != nil {
		return fmt.Errorf("save %s: %w", f.Path, err)
	}
	return nil
}

// encodePlots draws plots side by side on one canvas of w x h pixels.
func encodePlots(w, h int, plots ...*plot.Plot) ([]byte, error) {
	width := vg.Length(w) / dpi * vg.Inch
	height := vg.Length(h) / dpi * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	if len(plots) == 1 {
		plots[0].Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows:      1,
			Cols:      len(plots),
			PadX:      vg.Millimeter * 10,
			PadTop:    vg.Millimeter * 4,
			PadBottom: vg.Millimeter * 4,
			PadLeft:   vg.Millimeter * 4,
			PadRight:  vg.Millimeter * 4,
		}
		canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
		for i, p := range plots {
			p.Draw(canvases[0][i])
		}
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// palette holds twelve distinguishable colors, one per month.
var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	color.RGBA{R: 0xae, G: 0xc7, B: 0xe8, A: 0xff},
	color.RGBA{R: 0xff, G: 0xbb, B: 0x78, A: 0xff},
}

func paletteColor(i int) color.Color { return palette[i%len(palette)] }
