package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaceResultJSONRoundTrip(t *testing.T) {
	original := RaceResult{
		Bib:                104,
		Place:              3,
		Name:               "J. Doe",
		Age:                41,
		State:              "TN",
		LapsCompleted:      27,
		TotalDistanceMiles: decimal.RequireFromString("112.86"),
		TotalDistanceKm:    decimal.RequireFromString("181.63"),
		RaceTime:           "23:41:09",
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded RaceResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Bib, decoded.Bib)
	assert.True(t, original.TotalDistanceMiles.Equal(decoded.TotalDistanceMiles))
}

func TestRaceResultDistanceHelpers(t *testing.T) {
	r := RaceResult{
		TotalDistanceMiles: decimal.RequireFromString("100.5"),
		TotalDistanceKm:    decimal.RequireFromString("161.7"),
	}
	assert.InDelta(t, 100.5, r.MilesFloat(), 1e-9)
	assert.InDelta(t, 161.7, r.KmFloat(), 1e-9)
}

func TestCompletedAnyLap(t *testing.T) {
	assert.True(t, (&RaceResult{LapsCompleted: 1}).CompletedAnyLap())
	assert.False(t, (&RaceResult{}).CompletedAnyLap())
}
