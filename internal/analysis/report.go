package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Report is a markdown-friendly summary of a cleaned page-view series.
type Report struct {
	Name      string       `json:"name"`
	RawRows   int          `json:"raw_rows"`
	CleanRows int          `json:"clean_rows"`
	Band      Band         `json:"band"`
	Bounds    Bounds       `json:"bounds"`
	First     string       `json:"first_date,omitempty"`
	Last      string       `json:"last_date,omitempty"`
	Min       float64      `json:"min"`
	Max       float64      `json:"max"`
	Mean      float64      `json:"mean"`
	Std       float64      `json:"std"`
	Monthly   []MonthlyRow `json:"monthly"`
	Yearly    []BoxStats   `json:"yearly"`
	Seasonal  []BoxStats   `json:"seasonal"`
}

// MonthlyRow is one pivot row; a nil entry marks a month without data.
type MonthlyRow struct {
	Year  int          `json:"year"`
	Means [12]*float64 `json:"means"`
}

// BuildReport cleans raw with band and summarizes the result.
func BuildReport(raw *dataset.Table, band Band) *Report {
	cleaned, bounds := Clean(raw, band, discardLogger)
	rep := &Report{
		Name:      raw.Name,
		RawRows:   raw.Len(),
		CleanRows: cleaned.Len(),
		Band:      band,
		Bounds:    bounds,
	}
	if cleaned.Len() > 0 {
		vals := cleaned.Values()
		rep.First = cleaned.Records[0].Date.Format("2006-01-02")
		rep.Last = cleaned.Records[cleaned.Len()-1].Date.Format("2006-01-02")
		rep.Min, rep.Max = math.Inf(1), math.Inf(-1)
		for _, v := range vals {
			rep.Min = math.Min(rep.Min, v)
			rep.Max = math.Max(rep.Max, v)
		}
		rep.Mean = stat.Mean(vals, nil)
		if len(vals) > 1 {
			rep.Std = stat.StdDev(vals, nil)
		}
	}

	pivot := MonthlyAverages(cleaned)
	for i, y := range pivot.Years {
		row := MonthlyRow{Year: y}
		for m := 0; m < 12; m++ {
			if v := pivot.Cells[i][m]; !math.IsNaN(v) {
				v := v
				row.Means[m] = &v
			}
		}
		rep.Monthly = append(rep.Monthly, row)
	}
	rows := SeasonalRows(cleaned)
	for _, g := range GroupByYear(rows) {
		rep.Yearly = append(rep.Yearly, g.Summarize())
	}
	for _, g := range GroupByMonth(rows) {
		rep.Seasonal = append(rep.Seasonal, g.Summarize())
	}
	return rep
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d (cleaned %d, removed %d)\n", r.RawRows, r.CleanRows, r.RawRows-r.CleanRows))
	if r.First != "" {
		b.WriteString(fmt.Sprintf("Range: %s .. %s\n", r.First, r.Last))
	}
	b.WriteString("\n[OUTLIER BAND]\n")
	b.WriteString(fmt.Sprintf("- quantiles: %.3g .. %.3g\n", r.Band.Lower, r.Band.Upper))
	b.WriteString(fmt.Sprintf("- kept values: %.4g <= value <= %.4g\n", r.Bounds.Lower, r.Bounds.Upper))
	if r.CleanRows > 0 {
		b.WriteString(fmt.Sprintf("- cleaned: min %.4g, max %.4g, mean %.4g, std %.4g\n", r.Min, r.Max, r.Mean, r.Std))
	}

	if len(r.Monthly) > 0 {
		b.WriteString("\n[MONTHLY AVERAGES]\n")
		b.WriteString("| Year")
		for _, m := range MonthAbbrs {
			b.WriteString(" | ")
			b.WriteString(m)
		}
		b.WriteString(" |\n|---")
		for range MonthAbbrs {
			b.WriteString("|---")
		}
		b.WriteString("|\n")
		for _, row := range r.Monthly {
			b.WriteString(fmt.Sprintf("| %d", row.Year))
			for _, v := range row.Means {
				if v == nil {
					b.WriteString(" | -")
					continue
				}
				b.WriteString(fmt.Sprintf(" | %.0f", *v))
			}
			b.WriteString(" |\n")
		}
	}

	writeBoxes := func(title string, boxes []BoxStats) {
		if len(boxes) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(title)
		b.WriteString("\n")
		for _, s := range boxes {
			if s.Count == 0 {
				b.WriteString(fmt.Sprintf("- %s: no data\n", s.Label))
				continue
			}
			b.WriteString(fmt.Sprintf("- %s (n=%d): min %.4g, q1 %.4g, median %.4g, q3 %.4g, max %.4g\n",
				s.Label, s.Count, s.Min, s.Q1, s.Median, s.Q3, s.Max))
		}
	}
	writeBoxes("[YEARLY DISTRIBUTION]", r.Yearly)
	writeBoxes("[MONTHLY DISTRIBUTION]", r.Seasonal)
	return b.String()
}
