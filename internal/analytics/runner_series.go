package analytics

// Overlay attachment thresholds. Trendline and EMA disappear above
// three selected runners, the dispersion band above two, so a busy
// selection stays readable.
const (
	MaxTrendSelections = 3
	MaxBandSelections  = 2
)

// SeriesOptions tunes the per-runner series assembly.
type SeriesOptions struct {
	// SelectionCount is how many runners are currently charted,
	// including this one. It gates which overlays are attached.
	SelectionCount int
	// Window is the EMA smoothing window; <=0 means DefaultEMAWindow.
	Window int
	// ClampMin/ClampMax bound overlay values to the chart's visible
	// range. Clamping is skipped when ClampMax <= ClampMin.
	ClampMin float64
	ClampMax float64
}

// RunnerSeries is the chart-ready bundle for one runner's laps.
type RunnerSeries struct {
	Bib  int    `json:"bib"`
	Name string `json:"name"`

	// Laps is the raw parsed series, aligned with lap order.
	Laps []Sample `json:"laps"`

	// MinIndex and MaxIndex locate the fastest and slowest valid laps
	// for point highlighting, -1 when every lap is missing.
	MinIndex int `json:"min_index"`
	MaxIndex int `json:"max_index"`

	Summary Summary `json:"summary"`

	// Overlays; nil when suppressed by the selection count or when
	// there is not enough data to define them.
	Trend     []Sample `json:"trend,omitempty"`
	EMA       []Sample `json:"ema,omitempty"`
	BandUpper []Sample `json:"band_upper,omitempty"`
	BandLower []Sample `json:"band_lower,omitempty"`
}

// BuildRunnerSeries parses a runner's lap splits and derives the
// overlay series the lap chart renders for them.
func BuildRunnerSeries(bib int, name string, splits []string, opts SeriesOptions) RunnerSeries {
	laps := ParseSplits(splits)
	minIdx, maxIdx := MinMaxIndices(laps)

	rs := RunnerSeries{
		Bib:      bib,
		Name:     name,
		Laps:     laps,
		MinIndex: minIdx,
		MaxIndex: maxIdx,
		Summary:  Summarize(laps),
	}

	if opts.SelectionCount <= MaxTrendSelections {
		if trend, ok := FitTrend(laps); ok {
			rs.Trend = trendSeries(laps, trend, opts)
		}
		rs.EMA = SmoothEMA(laps, opts.Window)
	}

	if opts.SelectionCount <= MaxBandSelections && rs.Summary.Count > 0 {
		rs.BandUpper = bandSeries(laps, rs.Summary.Mean+rs.Summary.StdDev, opts)
		rs.BandLower = bandSeries(laps, rs.Summary.Mean-rs.Summary.StdDev, opts)
	}

	return rs
}

// trendSeries projects the fitted line back onto the lap axis. The
// k-th valid lap takes the line's value at x=k; missing laps stay
// missing so the trendline breaks where the data does.
func trendSeries(laps []Sample, trend Trend, opts SeriesOptions) []Sample {
	out := make([]Sample, len(laps))
	k := 0
	for i, s := range laps {
		if !s.Valid {
			continue
		}
		k++
		out[i] = Value(opts.clamp(trend.At(float64(k))))
	}
	return out
}

// bandSeries places a horizontal dispersion bound wherever the raw
// series has a value.
func bandSeries(laps []Sample, level float64, opts SeriesOptions) []Sample {
	out := make([]Sample, len(laps))
	clamped := opts.clamp(level)
	for i, s := range laps {
		if s.Valid {
			out[i] = Value(clamped)
		}
	}
	return out
}

func (o SeriesOptions) clamp(v float64) float64 {
	if o.ClampMax <= o.ClampMin {
		return v
	}
	if v < o.ClampMin {
		return o.ClampMin
	}
	if v > o.ClampMax {
		return o.ClampMax
	}
	return v
}
