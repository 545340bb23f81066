package analysis

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2016, time.May, 9, 0, 0, 0, 0, time.UTC)

func daily(values ...float64) *dataset.Table {
	recs := make([]dataset.Record, len(values))
	for i, v := range values {
		recs[i] = dataset.Record{Date: start.AddDate(0, 0, i), Value: v}
	}
	return dataset.New("test", recs)
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestQuantileLinearInterpolation(t *testing.T) {
	vals := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}

	assert.InDelta(t, 1.225, Quantile(vals, 0.025), 1e-9)
	assert.InDelta(t, 9.775, Quantile(vals, 0.975), 1e-9)
	assert.InDelta(t, 5.5, Quantile(vals, 0.5), 1e-9)
	assert.Equal(t, 1.0, Quantile(vals, 0))
	assert.Equal(t, 10.0, Quantile(vals, 1))
	assert.Equal(t, []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, vals, "input must not be reordered")

	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 42.0, Quantile([]float64{42}, 0.025))
	assert.Equal(t, 42.0, Quantile([]float64{42}, 0.975))
}

func TestCleanMatchesIndependentCount(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	vals := make([]float64, 500)
	for i := range vals {
		vals[i] = float64(r.Intn(5000))
	}
	raw := daily(vals...)
	lower, upper := Quantile(vals, 0.025), Quantile(vals, 0.975)
	want := 0
	for _, v := range vals {
		if v >= lower && v <= upper {
			want++
		}
	}

	cleaned, bounds := Clean(raw, DefaultBand(), discardLogger)
	assert.Equal(t, want, cleaned.Len())
	assert.Equal(t, Bounds{Lower: lower, Upper: upper}, bounds)

	again, _ := Clean(raw, DefaultBand(), discardLogger)
	assert.Equal(t, cleaned.Records, again.Records, "cleaning must be idempotent")
	assert.Len(t, raw.Records, 500, "raw table must be untouched")
}

func TestCleanOutputIsSubsetInOrder(t *testing.T) {
	raw := daily(5, 900, 7, 1, 6, 8, 3, 2, 4, 950, 9)
	cleaned, _ := Clean(raw, DefaultBand(), discardLogger)

	j := 0
	for _, r := range cleaned.Records {
		for j < raw.Len() && raw.Records[j] != r {
			j++
		}
		require.Less(t, j, raw.Len(), "record %v not found in order in raw table", r)
		j++
	}
}

func TestCleanIsInclusiveAtBounds(t *testing.T) {
	// With 41 ranks, q=0.025 and q=0.975 land exactly on ranks 1 and 39.
	vals := make([]float64, 41)
	for i := range vals {
		vals[i] = float64(i)
	}
	cleaned, bounds := Clean(daily(vals...), DefaultBand(), discardLogger)

	assert.Equal(t, Bounds{Lower: 1, Upper: 39}, bounds)
	assert.Equal(t, 39, cleaned.Len())
	assert.Equal(t, 1.0, cleaned.Records[0].Value)
	assert.Equal(t, 39.0, cleaned.Records[cleaned.Len()-1].Value)
}

func TestCleanDegenerateInputs(t *testing.T) {
	t.Run("single row", func(t *testing.T) {
		cleaned, bounds := Clean(daily(1234), DefaultBand(), discardLogger)
		assert.Equal(t, Bounds{Lower: 1234, Upper: 1234}, bounds)
		require.Equal(t, 1, cleaned.Len())
		assert.Equal(t, 1234.0, cleaned.Records[0].Value)
	})
	t.Run("all equal", func(t *testing.T) {
		cleaned, bounds := Clean(daily(3, 3, 3, 3), DefaultBand(), discardLogger)
		assert.Equal(t, Bounds{Lower: 3, Upper: 3}, bounds)
		assert.Equal(t, 4, cleaned.Len())
	})
	t.Run("empty", func(t *testing.T) {
		cleaned, bounds := Clean(daily(), DefaultBand(), discardLogger)
		assert.Equal(t, Bounds{}, bounds)
		assert.Equal(t, 0, cleaned.Len())
	})
}

func TestCleanKeepsEveryRowOfConstantSeries(t *testing.T) {
	for _, v := range []float64{3, 0.1, 0.3, 1.0 / 3, 12345.678, -7.25} {
		for _, n := range []int{2, 3, 4, 5, 7, 10, 41, 100, 1000} {
			t.Run(fmt.Sprintf("v=%g/n=%d", v, n), func(t *testing.T) {
				vals := make([]float64, n)
				for i := range vals {
					vals[i] = v
				}
				cleaned, bounds := Clean(daily(vals...), DefaultBand(), discardLogger)
				assert.Equal(t, v, bounds.Lower)
				assert.Equal(t, v, bounds.Upper)
				assert.Equal(t, n, cleaned.Len())
			})
		}
	}
}

func TestQuantileStaysBetweenNeighbours(t *testing.T) {
	sorted := []float64{0.1, 0.1, 0.2, 0.3, 0.3, 0.3}
	for _, q := range []float64{0.025, 0.1, 0.25, 0.5, 0.75, 0.9, 0.975} {
		pos := q * float64(len(sorted)-1)
		lo, hi := sorted[int(math.Floor(pos))], sorted[int(math.Ceil(pos))]
		got := quantile(sorted, q)
		assert.GreaterOrEqual(t, got, lo, "q=%g", q)
		assert.LessOrEqual(t, got, hi, "q=%g", q)
	}
}

func TestCleanRemovesInjectedOutliers(t *testing.T) {
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(100 + (i*37)%101)
	}
	for i := 0; i < 20; i++ {
		vals[i*50+3] = 10000
	}
	raw := daily(vals...)
	logger, buf := captureLogger()

	cleaned, bounds := Clean(raw, DefaultBand(), logger)

	want := 0
	for _, v := range vals {
		if bounds.Contains(v) {
			want++
		}
	}
	assert.Equal(t, want, cleaned.Len())
	assert.LessOrEqual(t, bounds.Upper, 200.0)
	for _, r := range cleaned.Records {
		assert.NotEqual(t, 10000.0, r.Value)
	}
	assert.Contains(t, buf.String(), "Number of rows in the cleaned table")
	assert.Contains(t, buf.String(), fmt.Sprintf("rows=%d", cleaned.Len()))
}

func TestBandValidate(t *testing.T) {
	assert.NoError(t, DefaultBand().Validate())
	assert.Error(t, Band{Lower: 0.9, Upper: 0.1}.Validate())
	assert.Error(t, Band{Lower: -0.1, Upper: 0.5}.Validate())
	assert.Error(t, Band{Lower: 0.1, Upper: 1.5}.Validate())
}

func TestMonthNames(t *testing.T) {
	assert.Equal(t, "January", MonthName(time.January))
	assert.Equal(t, "September", MonthName(time.September))
	assert.Equal(t, "Jan", MonthAbbr(time.January))
	assert.Equal(t, "Sep", MonthAbbr(time.September))
	assert.Equal(t, "Dec", MonthAbbr(time.December))
	assert.Equal(t, "%!Month(13)", MonthAbbr(13))
	for m := time.January; m <= time.December; m++ {
		assert.Equal(t, m.String(), MonthName(m))
		assert.Equal(t, m.String()[:3], MonthAbbr(m))
	}
}

func TestMonthlyAveragesAlwaysHasTwelveOrderedColumns(t *testing.T) {
	// Only May..July 2016 present.
	raw := daily(make([]float64, 70)...)
	p := MonthlyAverages(raw)

	assert.Equal(t, MonthNames, p.Columns)
	assert.Equal(t, []int{2016}, p.Years)
	_, ok := p.Cell(2016, 1)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(p.Cells[0][0]))
	v, ok := p.Cell(2016, 5)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, 23, p.Counts[0][4])
	_, ok = p.Cell(2016, 13)
	assert.False(t, ok)
}

func TestMonthlyAveragesConstantTwoYears(t *testing.T) {
	const v = 4321.0
	var recs []dataset.Record
	for d := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() < 2020; d = d.AddDate(0, 0, 1) {
		recs = append(recs, dataset.Record{Date: d, Value: v})
	}
	p := MonthlyAverages(dataset.New("const", recs))

	require.Equal(t, []int{2018, 2019}, p.Years)
	for i := range p.Years {
		for m := 0; m < 12; m++ {
			assert.Equal(t, v, p.Cells[i][m])
		}
	}
	assert.Equal(t, []float64{v, v}, p.Month(11))
}

func TestMonthlyAveragesMeans(t *testing.T) {
	raw := dataset.New("x", []dataset.Record{
		{Date: time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC), Value: 10},
		{Date: time.Date(2017, 3, 2, 0, 0, 0, 0, time.UTC), Value: 20},
		{Date: time.Date(2016, 3, 2, 0, 0, 0, 0, time.UTC), Value: 5},
	})
	p := MonthlyAverages(raw)

	assert.Equal(t, []int{2016, 2017}, p.Years)
	v, ok := p.Cell(2017, 3)
	require.True(t, ok)
	assert.Equal(t, 15.0, v)
}

func TestGroupByMonthOrderIgnoresInputOrder(t *testing.T) {
	var recs []dataset.Record
	for d := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2017; d = d.AddDate(0, 0, 3) {
		recs = append(recs, dataset.Record{Date: d, Value: float64(d.YearDay())})
	}
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })

	groups := GroupByMonth(SeasonalRows(dataset.New("shuffled", recs)))

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
		assert.NotEmpty(t, g.Values, g.Label)
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}, labels)
}

func TestGroupByMonthKeepsEmptyMonths(t *testing.T) {
	groups := GroupByMonth(SeasonalRows(daily(1, 2, 3)))
	require.Len(t, groups, 12)
	assert.Empty(t, groups[0].Values)
	assert.Equal(t, []float64{1, 2, 3}, groups[4].Values)
}

func TestGroupByYearAscending(t *testing.T) {
	raw := dataset.New("x", []dataset.Record{
		{Date: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), Value: 3},
		{Date: time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC), Value: 1},
		{Date: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), Value: 2},
	})
	rows := SeasonalRows(raw)
	assert.Equal(t, 2019, rows[0].Year)
	assert.Equal(t, "Jan", rows[0].Month)
	assert.Equal(t, "Jun", rows[1].Month)

	groups := GroupByYear(rows)
	require.Len(t, groups, 3)
	assert.Equal(t, "2016", groups[0].Label)
	assert.Equal(t, "2018", groups[1].Label)
	assert.Equal(t, "2019", groups[2].Label)
}

func TestSummarize(t *testing.T) {
	s := Group{Label: "2017", Values: []float64{5, 1, 4, 2, 3}}.Summarize()
	assert.Equal(t, BoxStats{Label: "2017", Count: 5, Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5}, s)
	assert.Equal(t, BoxStats{Label: "Jan"}, Group{Label: "Jan"}.Summarize())
}

func TestBuildReportMarkdown(t *testing.T) {
	vals := make([]float64, 120)
	for i := range vals {
		vals[i] = float64(100 + i)
	}
	vals[60] = 99999
	rep := BuildReport(daily(vals...), DefaultBand())

	assert.Equal(t, 120, rep.RawRows)
	assert.Less(t, rep.CleanRows, 120)
	assert.Equal(t, "2016-05-12", rep.First, "values 100..102 fall under the lower bound")
	require.Len(t, rep.Seasonal, 12)

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: test",
		fmt.Sprintf("Rows: 120 (cleaned %d, removed %d)", rep.CleanRows, 120-rep.CleanRows),
		"[OUTLIER BAND]",
		"[MONTHLY AVERAGES]",
		"| Year | Jan | Feb",
		"| 2016 | - | - | - | - | ",
		"[YEARLY DISTRIBUTION]",
		"- 2016 (n=",
		"[MONTHLY DISTRIBUTION]",
		"- Jan: no data",
	} {
		assert.True(t, strings.Contains(md, want), "markdown missing %q:\n%s", want, md)
	}
}
