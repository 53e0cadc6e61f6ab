package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	series := []Sample{Value(50), Value(52), Value(54)}
	summary := Summarize(series)

	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 52.0, summary.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(8.0/3.0), summary.StdDev, 1e-9)
}

func TestSummarizeSkipsMissing(t *testing.T) {
	series := []Sample{Value(50), Missing(), Value(54), Missing()}
	summary := Summarize(series)

	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 52.0, summary.Mean, 1e-9)
	assert.InDelta(t, 2.0, summary.StdDev, 1e-9)
}

func TestSummarizeAllMissing(t *testing.T) {
	series := []Sample{Missing(), Missing()}
	summary := Summarize(series)

	// Deliberate zero default rather than an error.
	assert.Equal(t, 0, summary.Count)
	assert.Zero(t, summary.Mean)
	assert.Zero(t, summary.StdDev)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.Mean)
	assert.Zero(t, summary.StdDev)
}

func TestMinMaxIndices(t *testing.T) {
	series := []Sample{Missing(), Value(54), Value(48), Value(60), Missing()}
	minIdx, maxIdx := MinMaxIndices(series)
	assert.Equal(t, 2, minIdx)
	assert.Equal(t, 3, maxIdx)
}

func TestMinMaxIndicesAllMissing(t *testing.T) {
	minIdx, maxIdx := MinMaxIndices([]Sample{Missing(), Missing()})
	assert.Equal(t, -1, minIdx)
	assert.Equal(t, -1, maxIdx)
}

func TestMinMaxIndicesTiesPreferEarliest(t *testing.T) {
	series := []Sample{Value(50), Value(50), Value(50)}
	minIdx, maxIdx := MinMaxIndices(series)
	assert.Equal(t, 0, minIdx)
	assert.Equal(t, 0, maxIdx)
}
