package models

import (
	"github.com/shopspring/decimal"
)

// RaceResult represents one participant's final standing in an
// edition. Bib numbers are unique within an edition and places form a
// near-dense ranking starting at 1.
type RaceResult struct {
	Bib                int             `json:"bib" validate:"required,gt=0"`
	Place              int             `json:"place" validate:"required,gte=1"`
	Name               string          `json:"name" validate:"required"`
	Age                int             `json:"age" validate:"gte=0"`
	State              string          `json:"state"`
	LapsCompleted      int             `json:"laps_completed" validate:"gte=0"`
	TotalDistanceMiles decimal.Decimal `json:"total_distance_miles"`
	TotalDistanceKm    decimal.Decimal `json:"total_distance_km"`
	RaceTime           string          `json:"race_time"`
}

// MilesFloat returns the total distance in miles as a float for chart
// output.
func (r *RaceResult) MilesFloat() float64 {
	f, _ := r.TotalDistanceMiles.Float64()
	return f
}

// KmFloat returns the total distance in kilometers as a float for
// chart output.
func (r *RaceResult) KmFloat() float64 {
	f, _ := r.TotalDistanceKm.Float64()
	return f
}

// CompletedAnyLap reports whether the runner recorded at least one
// full lap.
func (r *RaceResult) CompletedAnyLap() bool {
	return r.LapsCompleted > 0
}
