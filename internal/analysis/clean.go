package analysis

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Band is the pair of quantile fractions that delimit normal observations.
type Band struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// DefaultBand keeps the values between the 2.5th and 97.5th percentiles.
func DefaultBand() Band {
	return Band{Lower: 0.025, Upper: 0.975}
}

// Validate reports whether the fractions are usable.
func (b Band) Validate() error {
	if b.Lower < 0 || b.Upper > 1 || b.Lower > b.Upper {
		return fmt.Errorf("invalid quantile band [%g, %g]: need 0 <= lower <= upper <= 1", b.Lower, b.Upper)
	}
	return nil
}

// Bounds are the value limits computed for a Band.
type Bounds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies inside the bounds, both ends included.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// OutlierBounds computes the bounds of band over the full value distribution of t.
func OutlierBounds(t *dataset.Table, band Band) Bounds {
	values := t.Values()
	return Bounds{
		Lower: Quantile(values, band.Lower),
		Upper: Quantile(values, band.Upper),
	}
}

// Clean returns the records of t whose value lies inside the band, in their
// original order, together with the bounds used. t is left untouched.
// The retained row count is logged at info level.
func Clean(t *dataset.Table, band Band, logger *slog.Logger) (*dataset.Table, Bounds) {
	if logger == nil {
		logger = slog.Default()
	}
	bounds := OutlierBounds(t, band)
	cleaned := t.Filter(func(r dataset.Record) bool { return bounds.Contains(r.Value) })
	logger.Info("Number of rows in the cleaned table",
		slog.Int("rows", cleaned.Len()),
		slog.Int("raw_rows", t.Len()),
		slog.Float64("lower", bounds.Lower),
		slog.Float64("upper", bounds.Upper))
	return cleaned, bounds
}
