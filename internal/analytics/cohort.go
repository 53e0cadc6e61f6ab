package analytics

// DefaultCohortThresholdMinutes is the lap duration above which a lap
// counts as a "slow" lap in the placement analysis.
const DefaultCohortThresholdMinutes = 55

// CohortRunner is one runner's input to the cohort analysis: their
// finishing rank, display name and raw lap splits.
type CohortRunner struct {
	Rank   int
	Name   string
	Splits []string
}

// CohortRecord is one runner's row in the placement-vs-fatigue
// analysis.
type CohortRecord struct {
	Rank                 int     `json:"rank"`
	Name                 string  `json:"name"`
	PercentOverThreshold float64 `json:"percent_over_threshold"`
	LapCount             int     `json:"lap_count"`
}

// AnalyzeCohort computes, for every runner in finishing order, the
// percentage of their laps slower than thresholdMinutes. Unparseable
// splits stay in the lap count but can never exceed the threshold.
// Runners with no laps report zero percent.
func AnalyzeCohort(runners []CohortRunner, thresholdMinutes float64) []CohortRecord {
	if thresholdMinutes <= 0 {
		thresholdMinutes = DefaultCohortThresholdMinutes
	}

	records := make([]CohortRecord, 0, len(runners))
	for _, runner := range runners {
		over := 0
		for _, split := range runner.Splits {
			if s := ParseSplit(split); s.Valid && s.Minutes > thresholdMinutes {
				over++
			}
		}
		percent := 0.0
		if len(runner.Splits) > 0 {
			percent = float64(over) / float64(len(runner.Splits)) * 100.0
		}
		records = append(records, CohortRecord{
			Rank:                 runner.Rank,
			Name:                 runner.Name,
			PercentOverThreshold: percent,
			LapCount:             len(runner.Splits),
		})
	}
	return records
}

// CohortOverlay carries the smoothed and fitted curves drawn across
// the rank axis of the cohort chart. Values follow the display order
// of the records passed in.
type CohortOverlay struct {
	EMA   []float64 `json:"ema"`
	Trend []Sample  `json:"trend"`
}

// BuildCohortOverlay derives the EMA and best-fit overlays for a
// cohort percentage curve. The trend is absent (all missing) when
// fewer than two records exist.
func BuildCohortOverlay(records []CohortRecord, window int) CohortOverlay {
	percents := make([]float64, len(records))
	for i, r := range records {
		percents[i] = r.PercentOverThreshold
	}

	overlay := CohortOverlay{
		EMA:   SmoothEMADense(percents, window),
		Trend: make([]Sample, len(records)),
	}
	if trend, ok := FitTrend(DenseSeries(percents)); ok {
		for i := range records {
			overlay.Trend[i] = Value(trend.At(float64(i + 1)))
		}
	}
	return overlay
}
