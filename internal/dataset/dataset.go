// Package dataset loads dated single-value tables (daily counts) from CSV,
// TSV and XLSX files into typed records.
package dataset

import "time"

// Record is one observation of the series.
type Record struct {
	Date  time.Time
	Value float64
}

// Table is an ordered sequence of records. Order is the order of the source
// file; dates are neither deduplicated nor sorted.
type Table struct {
	Name    string
	Records []Record
}

// New builds a table from records. The slice is used as-is.
func New(name string, records []Record) *Table {
	return &Table{Name: name, Records: records}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Values returns a fresh slice of the value column.
func (t *Table) Values() []float64 {
	out := make([]float64, t.Len())
	for i, r := range t.Records {
		out[i] = r.Value
	}
	return out
}

// Dates returns a fresh slice of the date column.
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, t.Len())
	for i, r := range t.Records {
		out[i] = r.Date
	}
	return out
}

// Clone returns a deep copy so callers can transform without touching t.
func (t *Table) Clone() *Table {
	if t == nil {
		return &Table{}
	}
	recs := make([]Record, len(t.Records))
	copy(recs, t.Records)
	return &Table{Name: t.Name, Records: recs}
}

// Filter returns a new table holding the records for which keep is true,
// in their original order.
func (t *Table) Filter(keep func(Record) bool) *Table {
	if t == nil {
		return &Table{}
	}
	out := &Table{Name: t.Name}
	for _, r := range t.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Day keeps the calendar day of ts as written and pins it to midnight UTC.
func Day(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
