package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Load reads the selected sheet. If opt.SheetName is empty, opt.SheetIndex
// (1-based) picks the sheet in workbook order.
func (xlsxLoader) Load(path string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingColumn, sheet)
	}
	dateIdx, valueIdx, err := columns(rows[0], opt)
	if err != nil {
		return nil, err
	}

	t := &Table{Name: filepath.Base(path)}
	for i, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		line := i + 2
		if dateIdx < len(rec) {
			rec[dateIdx] = serialToDate(rec[dateIdx])
		}
		r, err := parseRecord(rec, dateIdx, valueIdx, line, opt)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		t.Records = append(t.Records, r)
	}
	return t, nil
}

func pickSheet(sheets []string, opt Options, file string) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			opt.SheetName, file, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range; workbook '%s' has %d sheet(s)", idx, file, len(sheets))
	}
	return sheets[idx-1], nil
}

// serialToDate rewrites an Excel date serial (e.g. "42500") as YYYY-MM-DD.
// Anything that is not a plain number is returned unchanged.
func serialToDate(cell string) string {
	s := strings.TrimSpace(cell)
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 {
		return cell
	}
	ts, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return ts.Format("2006-01-02")
}
