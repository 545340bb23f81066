// Package analysis cleans page-view series and derives the aggregates the
// charts and reports are drawn from.
package analysis

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of values using linear interpolation
// between the closest ranks (position q*(n-1) in sorted order).
// values is not modified. An empty slice yields 0.
func Quantile(values []float64, q float64) float64 {
	cp := make([]float64, len(values))
	copy(cp, values)
	sort.Float64s(cp)
	return quantile(cp, q)
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return lerp(sorted[lo], sorted[hi], pos-float64(lo))
}

// lerp interpolates from a towards b. It returns exactly a when a == b and
// stays within [a, b], so equal neighbours never drift by an ulp.
func lerp(a, b, w float64) float64 {
	d := b - a
	if w >= 0.5 {
		return b - d*(1-w)
	}
	return a + d*w
}
