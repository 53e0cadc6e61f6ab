package analytics

// Trend is an ordinary least-squares fit y = Slope*x + Intercept where
// x is the 1-based position among the valid points of a series.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// FitTrend fits a straight line through the valid points of the
// series. Gaps are skipped, not renumbered: the k-th valid point gets
// x=k. Fewer than two valid points, or a degenerate fit with all
// x-values equal, reports ok=false instead of producing infinities.
func FitTrend(series []Sample) (Trend, bool) {
	var sumX, sumY, sumXY, sumXX float64
	n := 0
	for _, s := range series {
		if !s.Valid {
			continue
		}
		n++
		x := float64(n)
		sumX += x
		sumY += s.Minutes
		sumXY += x * s.Minutes
		sumXX += x * x
	}
	if n < 2 {
		return Trend{}, false
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return Trend{}, false
	}

	slope := (float64(n)*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / float64(n)
	return Trend{Slope: slope, Intercept: intercept}, true
}

// At evaluates the fitted line at position x.
func (t Trend) At(x float64) float64 {
	return t.Slope*x + t.Intercept
}
