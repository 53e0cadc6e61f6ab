package analytics

// DefaultEMAWindow is the smoothing window used by the lap chart.
const DefaultEMAWindow = 6

// Alpha converts a window size into the EMA smoothing factor
// 2/(window+1). Non-positive windows fall back to the default.
func Alpha(window int) float64 {
	if window <= 0 {
		window = DefaultEMAWindow
	}
	return 2.0 / float64(window+1)
}

// SmoothEMA computes a gap-aware exponential moving average. The
// output is aligned 1:1 with the input: missing in, missing out. Each
// valid element is smoothed against the most recent smoothed value,
// carried across gaps; when no smoothed value exists yet the element's
// own raw value stands in, so the first valid element equals its raw
// value. Dense series are just the gap-free special case, so the
// cohort overlay shares this single recurrence via SmoothEMADense.
func SmoothEMA(series []Sample, window int) []Sample {
	alpha := Alpha(window)
	out := make([]Sample, len(series))
	prev := Missing()
	for i, s := range series {
		if !s.Valid {
			continue
		}
		base := s.Minutes
		if prev.Valid {
			base = prev.Minutes
		}
		out[i] = Value(alpha*s.Minutes + (1-alpha)*base)
		prev = out[i]
	}
	return out
}

// SmoothEMADense smooths a series with no gaps, such as the cohort
// percentage curve over the rank axis.
func SmoothEMADense(values []float64, window int) []float64 {
	smoothed := SmoothEMA(DenseSeries(values), window)
	out := make([]float64, len(smoothed))
	for i, s := range smoothed {
		out[i] = s.Minutes
	}
	return out
}
