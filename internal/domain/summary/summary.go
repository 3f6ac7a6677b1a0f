// Package summary describes a score table: its shape, a preview of the first
// rows and a fixed set of statistics per dimension.
package summary

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/okian/radar/internal/domain/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPreviewRows is the number of rows shown in a report preview.
const DefaultPreviewRows = 5

// Stats are the descriptive statistics of one dimension.
type Stats struct {
	Dimension string  `json:"dimension"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"`
	Min       float64 `json:"min"`
	Q1        float64 `json:"q1"`
	Median    float64 `json:"median"`
	Q3        float64 `json:"q3"`
	Max       float64 `json:"max"`
}

// Report is a read-only description of a table.
type Report struct {
	IndexName  string      `json:"index_name,omitempty"`
	Entities   []string    `json:"entities"`
	Dimensions []string    `json:"dimensions"`
	Preview    [][]float64 `json:"preview"`
	Stats      []Stats     `json:"stats"`
}

// NumEntities returns the number of described entities.
func (r Report) NumEntities() int { return len(r.Entities) }

// NumDimensions returns the number of described dimensions.
func (r Report) NumDimensions() int { return len(r.Dimensions) }

// Describe builds a Report for t. previewRows <= 0 selects DefaultPreviewRows.
func Describe(t *table.Table, previewRows int) Report {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	dims := t.Dimensions()
	r := Report{
		IndexName:  t.IndexName(),
		Entities:   t.Entities(),
		Dimensions: dims,
		Preview:    t.Head(previewRows).Values(),
		Stats:      make([]Stats, len(dims)),
	}
	for j, d := range dims {
		r.Stats[j] = Column(d, t.Column(j))
	}
	return r
}

// Column computes Stats over values. Std is the sample standard deviation
// (n-1 denominator); it is NaN for fewer than two values. Every statistic
// except Count is NaN for an empty column.
func Column(dimension string, values []float64) Stats {
	s := Stats{Dimension: dimension, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q1 = Quantile(0.25, sorted)
	s.Median = Quantile(0.5, sorted)
	s.Q3 = Quantile(0.75, sorted)
	return s
}

// Quantile returns the p-quantile of sorted using linear interpolation
// between closest ranks at position (n-1)p. sorted must be ascending.
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// MarshalJSON encodes undefined statistics as null.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Dimension string   `json:"dimension"`
		Count     int      `json:"count"`
		Mean      *float64 `json:"mean"`
		Std       *float64 `json:"std"`
		Min       *float64 `json:"min"`
		Q1        *float64 `json:"q1"`
		Median    *float64 `json:"median"`
		Q3        *float64 `json:"q3"`
		Max       *float64 `json:"max"`
	}{
		Dimension: s.Dimension,
		Count:     s.Count,
		Mean:      finite(s.Mean),
		Std:       finite(s.Std),
		Min:       finite(s.Min),
		Q1:        finite(s.Q1),
		Median:    finite(s.Median),
		Q3:        finite(s.Q3),
		Max:       finite(s.Max),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
