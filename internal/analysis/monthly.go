package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// MonthlyPivot holds mean values keyed by year (rows) and calendar month
// (columns). Columns are always January..December; a cell with no
// observations is NaN.
type MonthlyPivot struct {
	Years   []int         `json:"years"`
	Columns [12]string    `json:"columns"`
	Cells   [][12]float64 `json:"-"`
	Counts  [][12]int     `json:"counts"`
}

// MonthlyAverages groups t by (year, month) and takes the mean of each group.
func MonthlyAverages(t *dataset.Table) MonthlyPivot {
	type key struct {
		year  int
		month int
	}
	groups := map[key][]float64{}
	yearSet := map[int]struct{}{}
	for _, r := range t.Clone().Records {
		k := key{year: r.Date.Year(), month: int(r.Date.Month()) - 1}
		groups[k] = append(groups[k], r.Value)
		yearSet[k.year] = struct{}{}
	}

	p := MonthlyPivot{Columns: MonthNames}
	for y := range yearSet {
		p.Years = append(p.Years, y)
	}
	sort.Ints(p.Years)
	p.Cells = make([][12]float64, len(p.Years))
	p.Counts = make([][12]int, len(p.Years))
	for i, y := range p.Years {
		for m := 0; m < 12; m++ {
			vals := groups[key{year: y, month: m}]
			if len(vals) == 0 {
				p.Cells[i][m] = math.NaN()
				continue
			}
			p.Cells[i][m] = stat.Mean(vals, nil)
			p.Counts[i][m] = len(vals)
		}
	}
	return p
}

// Cell returns the mean for year and month (1-based) and whether it exists.
func (p MonthlyPivot) Cell(year int, month int) (float64, bool) {
	if month < 1 || month > 12 {
		return 0, false
	}
	for i, y := range p.Years {
		if y == year {
			v := p.Cells[i][month-1]
			return v, !math.IsNaN(v)
		}
	}
	return 0, false
}

// Month returns the column for month index m (0 = January) across all years.
func (p MonthlyPivot) Month(m int) []float64 {
	out := make([]float64, len(p.Years))
	for i := range p.Years {
		out[i] = p.Cells[i][m]
	}
	return out
}
