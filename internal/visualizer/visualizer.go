// Package visualizer ties a loaded page-view table to the cleaner and the
// chart renderers.
package visualizer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/pageviews-cli/internal/analysis"
	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"github.com/KaramelBytes/pageviews-cli/internal/render"
)

// Kind names one of the charts.
type Kind string

const (
	Line Kind = "line"
	Bar  Kind = "bar"
	Box  Kind = "box"
)

// Kinds lists every chart in drawing order.
var Kinds = []Kind{Line, Bar, Box}

// ParseKinds parses a comma separated list such as "line,box".
// An empty string selects every chart.
func ParseKinds(s string) ([]Kind, error) {
	if strings.TrimSpace(s) == "" {
		return Kinds, nil
	}
	seen := map[Kind]bool{}
	var out []Kind
	for _, part := range strings.Split(s, ",") {
		k := Kind(strings.ToLower(strings.TrimSpace(part)))
		switch k {
		case Line, Bar, Box:
		case "":
			continue
		default:
			return nil, fmt.Errorf("unknown chart %q (use line|bar|box)", part)
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return Kinds, nil
	}
	return out, nil
}

// Visualizer holds the raw table and the settings shared by every operation.
// The raw table is never modified.
type Visualizer struct {
	raw     *dataset.Table
	band    analysis.Band
	outDir  string
	logger  *slog.Logger
	options map[Kind]render.Options
}

// Option configures a Visualizer.
type Option func(*Visualizer)

// WithLogger sets the logger used for the cleaning summary and draw events.
func WithLogger(l *slog.Logger) Option {
	return func(v *Visualizer) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithOutputDir sets the directory the images are written to.
func WithOutputDir(dir string) Option {
	return func(v *Visualizer) { v.outDir = dir }
}

// WithBand overrides the default 2.5%..97.5% quantile band.
func WithBand(b analysis.Band) Option {
	return func(v *Visualizer) { v.band = b }
}

// WithRenderOptions sets the image size of one chart.
func WithRenderOptions(k Kind, opt render.Options) Option {
	return func(v *Visualizer) { v.options[k] = opt }
}

// New creates a Visualizer over raw.
func New(raw *dataset.Table, opts ...Option) *Visualizer {
	v := &Visualizer{
		raw:     raw,
		band:    analysis.DefaultBand(),
		outDir:  ".",
		logger:  slog.Default(),
		options: map[Kind]render.Options{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Raw returns the table the Visualizer was built with.
func (v *Visualizer) Raw() *dataset.Table { return v.raw }

// Path returns where the image of kind k is written.
func (v *Visualizer) Path(k Kind) string {
	switch k {
	case Line:
		return filepath.Join(v.outDir, render.LineFile)
	case Bar:
		return filepath.Join(v.outDir, render.BarFile)
	default:
		return filepath.Join(v.outDir, render.BoxFile)
	}
}

// CleanData drops the values outside the quantile band and returns the
// cleaned table with the bounds used.
func (v *Visualizer) CleanData() (*dataset.Table, analysis.Bounds) {
	return analysis.Clean(v.raw, v.band, v.logger)
}

// DrawLinePlot writes the daily line chart of the cleaned data.
func (v *Visualizer) DrawLinePlot() (*render.Figure, error) {
	return v.Draw(Line)
}

// DrawBarPlot writes the monthly average bar chart of the cleaned data.
func (v *Visualizer) DrawBarPlot() (*render.Figure, error) {
	return v.Draw(Bar)
}

// DrawBoxPlot writes the year-wise and month-wise box plots of the cleaned data.
func (v *Visualizer) DrawBoxPlot() (*render.Figure, error) {
	return v.Draw(Box)
}

// Draw cleans the raw table and renders the chart of kind k.
func (v *Visualizer) Draw(k Kind) (*render.Figure, error) {
	if err := v.band.Validate(); err != nil {
		return nil, err
	}
	cleaned, _ := v.CleanData()
	path := v.Path(k)
	opt := v.options[k]

	var (
		fig *render.Figure
		err error
	)
	switch k {
	case Line:
		fig, err = render.LinePlot(cleaned, path, opt)
	case Bar:
		fig, err = render.BarPlot(cleaned, path, opt)
	case Box:
		fig, err = render.BoxPlot(cleaned, path, opt)
	default:
		return nil, fmt.Errorf("unknown chart %q", k)
	}
	if err != nil {
		return nil, fmt.Errorf("draw %s plot: %w", k, err)
	}
	v.logger.Debug("chart written",
		slog.String("chart", string(k)),
		slog.String("path", fig.Path),
		slog.Int("width", fig.Width),
		slog.Int("height", fig.Height))
	return fig, nil
}

// DrawAll renders the given charts, or all of them when none are given.
// It stops at the first failure.
func (v *Visualizer) DrawAll(kinds ...Kind) ([]*render.Figure, error) {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	figs := make([]*render.Figure, 0, len(kinds))
	for _, k := range kinds {
		fig, err := v.Draw(k)
		if err != nil {
			return figs, err
		}
		figs = append(figs, fig)
	}
	return figs, nil
}
