package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingColumn indicates the header lacks the date or value column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidDate indicates a date cell could not be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidValue indicates a value cell is empty or not numeric.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnsupported indicates a file format with no registered loader.
	ErrUnsupported = errors.New("unsupported dataset format")
)

// Options controls how a dataset file is read.
type Options struct {
	// DateColumn and ValueColumn name the header cells (case-insensitive).
	DateColumn  string
	ValueColumn string
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// DateLayout forces a single time layout. If empty, common layouts are tried.
	DateLayout string
	// XLSX sheet selection. SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns the options for a `date,value` CSV.
func DefaultOptions() Options {
	return Options{
		DateColumn:  "date",
		ValueColumn: "value",
		SheetIndex:  1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if strings.TrimSpace(o.DateColumn) == "" {
		o.DateColumn = d.DateColumn
	}
	if strings.TrimSpace(o.ValueColumn) == "" {
		o.ValueColumn = d.ValueColumn
	}
	if o.SheetIndex <= 0 {
		o.SheetIndex = d.SheetIndex
	}
	return o
}

// Loader reads one file format.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Lookup returns the loader registered for path's extension.
func Lookup(path string) (Loader, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Load reads the dataset at path with the loader matching its extension.
// Files without a known extension are read as CSV.
func Load(path string, opt Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	opt = opt.withDefaults()
	l, err := Lookup(path)
	if err != nil {
		l = csvLoader{}
	}
	return l.Load(path, opt)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
