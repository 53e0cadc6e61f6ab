package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/ultraboard/internal/models"
)

func quietValidator() *DataValidator {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewDataValidator(log)
}

func TestValidateResultsClean(t *testing.T) {
	v := quietValidator()
	findings := v.ValidateResults([]models.RaceResult{
		{Bib: 11, Place: 1, Name: "First", LapsCompleted: 3},
		{Bib: 42, Place: 2, Name: "Second", LapsCompleted: 2},
	})
	assert.Empty(t, findings)
}

func TestValidateResultsFindings(t *testing.T) {
	v := quietValidator()
	findings := v.ValidateResults([]models.RaceResult{
		{Bib: 11, Place: 0, Name: ""},
		{Bib: 11, Place: 2, Name: "Dup", LapsCompleted: -1},
	})

	assert.Contains(t, findings, "bib 11: runner name is required")
	assert.Contains(t, findings, "bib 11: place must be positive, got 0")
	assert.Contains(t, findings, "duplicate bib 11")
	assert.Contains(t, findings, "bib 11: laps_completed cannot be negative, got -1")
}

func TestValidateLapsOrphansAndMismatches(t *testing.T) {
	v := quietValidator()
	results := []models.RaceResult{
		{Bib: 11, Place: 1, Name: "First", LapsCompleted: 2},
	}
	laps := []models.LapRecord{
		{Bib: 11, LapSplit: "50:00"},
		{Bib: 999, LapSplit: "51:00"},
	}

	findings := v.ValidateLaps(laps, results)
	assert.Contains(t, findings, "lap record for bib 999 has no matching result")
	assert.Contains(t, findings, "bib 11: 1 lap records but laps_completed=2")
}

func TestValidateSnapshotCombines(t *testing.T) {
	v := quietValidator()
	findings := v.ValidateSnapshot("2022",
		[]models.RaceResult{{Bib: 11, Place: 1, Name: "First", LapsCompleted: 1}},
		[]models.LapRecord{{Bib: 11, LapSplit: "50:00"}},
	)
	assert.Empty(t, findings)
}
