// Package analytics implements the pure computation layer behind the
// race dashboard: split-time parsing, descriptive statistics, ordinary
// least-squares trendlines, gap-aware exponential smoothing, terrain
// section segmentation and the per-runner/cohort series builders.
//
// Every function in this package is a stateless transformation of its
// inputs. Unparseable or absent values travel through the pipeline as
// explicit missing markers, never as zeros or NaN.
package analytics

import (
	"encoding/json"
	"sort"
)

// Sample is a single point on a lap or rank axis: either a number of
// minutes or an explicit missing marker. The zero value is missing.
type Sample struct {
	Minutes float64
	Valid   bool
}

// Value returns a valid sample carrying the given minutes.
func Value(minutes float64) Sample {
	return Sample{Minutes: minutes, Valid: true}
}

// Missing returns the missing marker.
func Missing() Sample {
	return Sample{}
}

// MarshalJSON encodes a missing sample as null so chart consumers can
// render gaps without a sentinel convention.
func (s Sample) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Minutes)
}

// UnmarshalJSON accepts null as the missing marker.
func (s *Sample) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Sample{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Value(v)
	return nil
}

// Compare orders two samples for sorting. Missing values sort after
// every valid value so they collect at the end of ascending output.
func Compare(a, b Sample) int {
	switch {
	case a.Valid && b.Valid:
		if a.Minutes < b.Minutes {
			return -1
		}
		if a.Minutes > b.Minutes {
			return 1
		}
		return 0
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	default:
		return 0
	}
}

// SortSamples sorts ascending with missing values pushed to the end.
func SortSamples(series []Sample) {
	sort.SliceStable(series, func(i, j int) bool {
		return Compare(series[i], series[j]) < 0
	})
}

// DenseSeries wraps a slice of plain values as an all-valid series.
func DenseSeries(values []float64) []Sample {
	series := make([]Sample, len(values))
	for i, v := range values {
		series[i] = Value(v)
	}
	return series
}

// validCount returns the number of non-missing entries.
func validCount(series []Sample) int {
	count := 0
	for _, s := range series {
		if s.Valid {
			count++
		}
	}
	return count
}
