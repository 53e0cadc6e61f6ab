package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlpha(t *testing.T) {
	assert.InDelta(t, 2.0/7.0, Alpha(6), 1e-9)
	assert.InDelta(t, 2.0/7.0, Alpha(0), 1e-9, "non-positive window uses the default")
	assert.InDelta(t, 0.5, Alpha(3), 1e-9)
}

func TestSmoothEMAFirstElementEqualsRaw(t *testing.T) {
	out := SmoothEMA([]Sample{Value(50), Value(52)}, 6)
	require.Len(t, out, 2)
	assert.InDelta(t, 50.0, out[0].Minutes, 1e-9)
}

func TestSmoothEMACarriesAcrossGaps(t *testing.T) {
	out := SmoothEMA([]Sample{Value(50), Missing(), Value(52)}, 6)
	require.Len(t, out, 3)

	assert.InDelta(t, 50.0, out[0].Minutes, 1e-9)
	assert.False(t, out[1].Valid, "missing source stays missing")

	// Position 2 smooths against the last smoothed value, 50.
	alpha := 2.0 / 7.0
	want := alpha*52 + (1-alpha)*50
	require.True(t, out[2].Valid)
	assert.InDelta(t, want, out[2].Minutes, 1e-9)
}

func TestSmoothEMALeadingGap(t *testing.T) {
	out := SmoothEMA([]Sample{Missing(), Value(47)}, 6)
	assert.False(t, out[0].Valid)
	// No prior smoothed value exists, so the element equals its raw.
	require.True(t, out[1].Valid)
	assert.InDelta(t, 47.0, out[1].Minutes, 1e-9)
}

func TestSmoothEMARecurrence(t *testing.T) {
	out := SmoothEMA([]Sample{Value(50), Value(56), Value(44)}, 6)
	alpha := 2.0 / 7.0

	second := alpha*56 + (1-alpha)*50
	third := alpha*44 + (1-alpha)*second
	assert.InDelta(t, second, out[1].Minutes, 1e-9)
	assert.InDelta(t, third, out[2].Minutes, 1e-9)
}

func TestSmoothEMADenseMatchesGapAwareCore(t *testing.T) {
	values := []float64{10, 20, 15, 30, 25}
	dense := SmoothEMADense(values, 6)
	sparse := SmoothEMA(DenseSeries(values), 6)

	require.Len(t, dense, len(sparse))
	for i := range dense {
		assert.InDelta(t, sparse[i].Minutes, dense[i], 1e-9)
	}
}

func TestSmoothEMAIdempotentInputs(t *testing.T) {
	series := []Sample{Value(50), Missing(), Value(52), Value(49)}
	first := SmoothEMA(series, 6)
	second := SmoothEMA(series, 6)
	assert.Equal(t, first, second)
}
