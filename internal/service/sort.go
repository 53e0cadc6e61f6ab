package service

import (
	"sort"
	"strings"

	"github.com/yourusername/ultraboard/internal/analytics"
	"github.com/yourusername/ultraboard/internal/models"
)

// SortColumn names a sortable column of the results table.
type SortColumn string

const (
	SortByPlace    SortColumn = "place"
	SortByBib      SortColumn = "bib"
	SortByName     SortColumn = "name"
	SortByAge      SortColumn = "age"
	SortByState    SortColumn = "state"
	SortByLaps     SortColumn = "laps"
	SortByDistance SortColumn = "distance"
	SortByRaceTime SortColumn = "race_time"
)

// SortResults returns a sorted copy of the standings. Rows with a
// missing value in the sort column always sort after rows with a
// value, in either direction; ties keep the original ranking order.
func SortResults(results []models.RaceResult, column SortColumn, ascending bool) []models.RaceResult {
	sorted := make([]models.RaceResult, len(results))
	copy(sorted, results)

	less := comparatorFor(column, ascending)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func comparatorFor(column SortColumn, ascending bool) func(a, b models.RaceResult) bool {
	switch column {
	case SortByBib:
		return numericLess(func(r models.RaceResult) analytics.Sample {
			return analytics.Value(float64(r.Bib))
		}, ascending)
	case SortByName:
		return stringLess(func(r models.RaceResult) string { return r.Name }, ascending)
	case SortByAge:
		return numericLess(func(r models.RaceResult) analytics.Sample {
			if r.Age <= 0 {
				return analytics.Missing()
			}
			return analytics.Value(float64(r.Age))
		}, ascending)
	case SortByState:
		return stringLess(func(r models.RaceResult) string { return r.State }, ascending)
	case SortByLaps:
		return numericLess(func(r models.RaceResult) analytics.Sample {
			return analytics.Value(float64(r.LapsCompleted))
		}, ascending)
	case SortByDistance:
		return numericLess(func(r models.RaceResult) analytics.Sample {
			return analytics.Value(r.MilesFloat())
		}, ascending)
	case SortByRaceTime:
		return numericLess(func(r models.RaceResult) analytics.Sample {
			return analytics.ParseSplit(r.RaceTime)
		}, ascending)
	default:
		return numericLess(func(r models.RaceResult) analytics.Sample {
			return analytics.Value(float64(r.Place))
		}, ascending)
	}
}

// numericLess orders by a numeric key with missing values pushed to
// the end regardless of direction.
func numericLess(key func(models.RaceResult) analytics.Sample, ascending bool) func(a, b models.RaceResult) bool {
	return func(a, b models.RaceResult) bool {
		ka, kb := key(a), key(b)
		switch {
		case !ka.Valid && !kb.Valid:
			return false
		case !ka.Valid:
			return false
		case !kb.Valid:
			return true
		}
		if ascending {
			return ka.Minutes < kb.Minutes
		}
		return ka.Minutes > kb.Minutes
	}
}

// stringLess orders case-insensitively with empty strings pushed to
// the end regardless of direction.
func stringLess(key func(models.RaceResult) string, ascending bool) func(a, b models.RaceResult) bool {
	return func(a, b models.RaceResult) bool {
		ka, kb := strings.ToLower(key(a)), strings.ToLower(key(b))
		switch {
		case ka == "" && kb == "":
			return false
		case ka == "":
			return false
		case kb == "":
			return true
		}
		if ascending {
			return ka < kb
		}
		return ka > kb
	}
}
