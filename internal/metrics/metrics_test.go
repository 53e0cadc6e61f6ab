package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordDatasetLoad(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordDatasetLoad("2022", 0.42)
	})

	assert.NotPanics(t, func() {
		RecordDatasetLoadFailure("2023")
	})
}

func TestRecordChartRequest(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name string
		kind string
	}{
		{name: "lap chart", kind: "laps"},
		{name: "cohort chart", kind: "cohort"},
		{name: "results table", kind: "results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordChartRequest(tt.kind, 0.002)
			})
		})
	}
}

func TestUpdateActiveEdition(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateActiveEdition(212, 4807)
	})

	assert.NotPanics(t, func() {
		UpdateActiveEdition(0, 0)
	})
}

func TestUpdateChartCacheHitRatio(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateChartCacheHitRatio(0.93)
	})
}

func TestStaleSelectionAndRetryCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordStaleSelection()
		RecordFetchRetriesExhausted()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordChartRequest(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordChartRequest("laps", 0.001)
	}
}
