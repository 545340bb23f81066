package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02", time.RFC3339, "2006/01/02", "01/02/2006", "1/2/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02T15:04:05",
}

// columns resolves the date and value column positions in a header row.
func columns(header []string, opt Options) (dateIdx, valueIdx int, err error) {
	dateIdx, valueIdx = -1, -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"\ufeff")))
		switch name {
		case strings.ToLower(opt.DateColumn):
			if dateIdx == -1 {
				dateIdx = i
			}
		case strings.ToLower(opt.ValueColumn):
			if valueIdx == -1 {
				valueIdx = i
			}
		}
	}
	var missing []string
	if dateIdx == -1 {
		missing = append(missing, opt.DateColumn)
	}
	if valueIdx == -1 {
		missing = append(missing, opt.ValueColumn)
	}
	if len(missing) > 0 {
		return -1, -1, fmt.Errorf("%w: %s (header: %s)", ErrMissingColumn, strings.Join(missing, ", "), strings.Join(header, ","))
	}
	return dateIdx, valueIdx, nil
}

// parseRecord converts one row. line is the 1-based file line for messages.
func parseRecord(rec []string, dateIdx, valueIdx, line int, opt Options) (Record, error) {
	var dateCell, valueCell string
	if dateIdx < len(rec) {
		dateCell = strings.TrimSpace(rec[dateIdx])
	}
	if valueIdx < len(rec) {
		valueCell = strings.TrimSpace(rec[valueIdx])
	}
	d, err := parseDate(dateCell, opt.DateLayout)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", line, err)
	}
	v, err := parseValue(valueCell)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", line, err)
	}
	return Record{Date: d, Value: v}, nil
}

func parseDate(s, layout string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if layout != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q does not match %q", ErrInvalidDate, s, layout)
		}
		return Day(t), nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func parseValue(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidValue)
	}
	raw := strings.ReplaceAll(s, " ", "")
	raw = strings.ReplaceAll(raw, "_", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return f, nil
}
