// Package logger provides dataset-loading specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// DatasetLogger provides dedicated logging for edition dataset loads.
type DatasetLogger struct {
	*logrus.Entry
}

// NewDatasetLogger creates a new dataset logger.
func NewDatasetLogger(baseLogger *logrus.Logger) *DatasetLogger {
	return &DatasetLogger{
		Entry: baseLogger.WithField("component", "dataset"),
	}
}

// LogEditionLoaded logs a completed edition switch.
func (dl *DatasetLogger) LogEditionLoaded(edition string, runners, lapRecords int, durationMs float64) {
	dl.WithFields(logrus.Fields{
		"edition":          edition,
		"runners":          runners,
		"lap_records":      lapRecords,
		"load_duration_ms": durationMs,
	}).Info("Edition dataset loaded")
}

// LogEditionLoadFailed logs a failed edition switch. Load failures are
// surfaced here exactly once; callers propagate the error without
// re-logging it.
func (dl *DatasetLogger) LogEditionLoadFailed(edition string, err error) {
	dl.WithFields(logrus.Fields{
		"edition": edition,
	}).WithError(err).Error("Edition dataset load failed")
}

// LogValidationFindings logs dataset consistency findings.
func (dl *DatasetLogger) LogValidationFindings(edition string, findings []string) {
	if len(findings) == 0 {
		return
	}
	dl.WithFields(logrus.Fields{
		"edition":  edition,
		"findings": findings,
	}).Warn("Edition dataset has consistency findings")
}
