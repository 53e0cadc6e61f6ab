package analytics

import "math"

// Summary holds descriptive statistics for a series with gaps.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// Summarize filters missing entries and computes the arithmetic mean
// and population standard deviation (divide by count) of the rest. An
// all-missing series yields mean=0 and stdDev=0; the zero default
// keeps chart code free of nil checks and is intentional.
func Summarize(series []Sample) Summary {
	sum := 0.0
	count := 0
	for _, s := range series {
		if s.Valid {
			sum += s.Minutes
			count++
		}
	}
	if count == 0 {
		return Summary{}
	}

	mean := sum / float64(count)
	variance := 0.0
	for _, s := range series {
		if s.Valid {
			diff := s.Minutes - mean
			variance += diff * diff
		}
	}
	variance /= float64(count)

	return Summary{Mean: mean, StdDev: math.Sqrt(variance), Count: count}
}

// MinMaxIndices returns the positions of the smallest and largest
// valid values, or (-1, -1) when the series has no valid entries.
// Ties resolve to the earliest lap.
func MinMaxIndices(series []Sample) (minIdx, maxIdx int) {
	minIdx, maxIdx = -1, -1
	for i, s := range series {
		if !s.Valid {
			continue
		}
		if minIdx == -1 || s.Minutes < series[minIdx].Minutes {
			minIdx = i
		}
		if maxIdx == -1 || s.Minutes > series[maxIdx].Minutes {
			maxIdx = i
		}
	}
	return minIdx, maxIdx
}
