package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ultraboard/internal/models"
)

// DataValidator sanity-checks a freshly loaded edition. Findings are
// advisory: the snapshot is served as-is, with findings logged once
// per load.
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator.
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidateResults checks the standings collection for required fields
// and duplicate identities.
func (v *DataValidator) ValidateResults(results []models.RaceResult) []string {
	var findings []string

	seenBibs := make(map[int]bool, len(results))
	for _, r := range results {
		if r.Name == "" {
			findings = append(findings, fmt.Sprintf("bib %d: runner name is required", r.Bib))
		}
		if r.Place < 1 {
			findings = append(findings, fmt.Sprintf("bib %d: place must be positive, got %d", r.Bib, r.Place))
		}
		if r.LapsCompleted < 0 {
			findings = append(findings, fmt.Sprintf("bib %d: laps_completed cannot be negative, got %d", r.Bib, r.LapsCompleted))
		}
		if seenBibs[r.Bib] {
			findings = append(findings, fmt.Sprintf("duplicate bib %d", r.Bib))
		}
		seenBibs[r.Bib] = true
	}

	return findings
}

// ValidateLaps cross-checks the lap collection against the standings:
// orphan bibs and runners whose recorded lap count disagrees with
// their lap records.
func (v *DataValidator) ValidateLaps(laps []models.LapRecord, results []models.RaceResult) []string {
	var findings []string

	completed := make(map[int]int, len(results))
	for _, r := range results {
		completed[r.Bib] = r.LapsCompleted
	}

	recorded := make(map[int]int)
	for _, lap := range laps {
		if _, ok := completed[lap.Bib]; !ok {
			findings = append(findings, fmt.Sprintf("lap record for bib %d has no matching result", lap.Bib))
		}
		recorded[lap.Bib]++
	}

	for bib, want := range completed {
		got := recorded[bib]
		if got != want {
			findings = append(findings, fmt.Sprintf("bib %d: %d lap records but laps_completed=%d", bib, got, want))
		}
	}

	return findings
}

// ValidateSnapshot runs both checks and logs the findings.
func (v *DataValidator) ValidateSnapshot(edition string, results []models.RaceResult, laps []models.LapRecord) []string {
	findings := v.ValidateResults(results)
	findings = append(findings, v.ValidateLaps(laps, results)...)

	if len(findings) > 0 {
		v.logger.WithFields(logrus.Fields{
			"edition":  edition,
			"findings": len(findings),
		}).Warn("Dataset validation findings")
	}
	return findings
}
