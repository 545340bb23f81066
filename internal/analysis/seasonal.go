package analysis

import (
	"sort"
	"strconv"
	"time"

	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
)

// SeasonalRow is a cleaned record annotated with its year and month label.
type SeasonalRow struct {
	Date  time.Time
	Value float64
	Year  int
	Month string
}

// Group is one box-plot category.
type Group struct {
	Label  string    `json:"label"`
	Values []float64 `json:"-"`
}

// SeasonalRows decomposes every record date into year and abbreviated month.
func SeasonalRows(t *dataset.Table) []SeasonalRow {
	rows := make([]SeasonalRow, 0, t.Len())
	for _, r := range t.Clone().Records {
		rows = append(rows, SeasonalRow{
			Date:  r.Date,
			Value: r.Value,
			Year:  r.Date.Year(),
			Month: MonthAbbr(r.Date.Month()),
		})
	}
	return rows
}

// GroupByYear buckets values by year, years ascending.
func GroupByYear(rows []SeasonalRow) []Group {
	byYear := map[int][]float64{}
	for _, r := range rows {
		byYear[r.Year] = append(byYear[r.Year], r.Value)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]Group, len(years))
	for i, y := range years {
		out[i] = Group{Label: strconv.Itoa(y), Values: byYear[y]}
	}
	return out
}

// GroupByMonth buckets values by month. The result always has twelve groups
// labelled Jan..Dec in calendar order; months without data have no values.
func GroupByMonth(rows []SeasonalRow) []Group {
	idx := make(map[string]int, 12)
	out := make([]Group, 12)
	for i, abbr := range MonthAbbrs {
		idx[abbr] = i
		out[i] = Group{Label: abbr}
	}
	for _, r := range rows {
		if i, ok := idx[r.Month]; ok {
			out[i].Values = append(out[i].Values, r.Value)
		}
	}
	return out
}

// BoxStats is the five-number summary of a group.
type BoxStats struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summarize computes the five-number summary with the linear quantile.
func (g Group) Summarize() BoxStats {
	s := BoxStats{Label: g.Label, Count: len(g.Values)}
	if s.Count == 0 {
		return s
	}
	sorted := make([]float64, len(g.Values))
	copy(sorted, g.Values)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	s.Max = sorted[len(sorted)-1]
	return s
}
