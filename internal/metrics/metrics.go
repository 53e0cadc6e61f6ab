// Package metrics provides the centralized Prometheus metrics registry for the dashboard service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	DatasetLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ultraboard",
		Name:      "dataset_loads_total",
		Help:      "Total number of edition dataset loads",
	}, []string{"edition", "status"})
	ChartRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ultraboard",
		Name:      "chart_requests_total",
		Help:      "Total number of chart dataset requests",
	}, []string{"kind"})
	StaleSelectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ultraboard",
		Name:      "stale_selections_total",
		Help:      "Total number of selected bibs dropped because they were absent from the active edition",
	})
	FetchRetriesExhaustedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ultraboard",
		Name:      "fetch_retries_exhausted_total",
		Help:      "Total number of dataset fetches that failed after all retries",
	})
)

// Gauge metrics
var (
	ActiveEditionRunners = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ultraboard",
		Name:      "active_edition_runners",
		Help:      "Number of runners in the currently loaded edition",
	})
	ActiveEditionLapRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ultraboard",
		Name:      "active_edition_lap_records",
		Help:      "Number of lap records in the currently loaded edition",
	})
	ChartCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ultraboard",
		Name:      "chart_cache_hit_ratio",
		Help:      "Hit ratio of the chart dataset cache",
	})
)

// Histogram metrics
var (
	DatasetLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ultraboard",
		Name:      "dataset_load_duration_seconds",
		Help:      "Duration of edition dataset loads in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	ChartBuildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ultraboard",
		Name:      "chart_build_duration_seconds",
		Help:      "Duration of chart dataset assembly in seconds",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"kind"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(DatasetLoadsTotal)
		registry.MustRegister(ChartRequestsTotal)
		registry.MustRegister(StaleSelectionsTotal)
		registry.MustRegister(FetchRetriesExhaustedTotal)

		// Register gauge metrics
		registry.MustRegister(ActiveEditionRunners)
		registry.MustRegister(ActiveEditionLapRecords)
		registry.MustRegister(ChartCacheHitRatio)

		// Register histogram metrics
		registry.MustRegister(DatasetLoadDuration)
		registry.MustRegister(ChartBuildDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordDatasetLoad records a completed edition load.
func RecordDatasetLoad(edition string, durationSeconds float64) {
	DatasetLoadsTotal.WithLabelValues(edition, "success").Inc()
	DatasetLoadDuration.Observe(durationSeconds)
}

// RecordDatasetLoadFailure records a failed edition load.
func RecordDatasetLoadFailure(edition string) {
	DatasetLoadsTotal.WithLabelValues(edition, "failure").Inc()
}

// RecordChartRequest records a chart dataset request.
func RecordChartRequest(kind string, durationSeconds float64) {
	ChartRequestsTotal.WithLabelValues(kind).Inc()
	ChartBuildDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordStaleSelection records a selected bib absent from the active edition.
func RecordStaleSelection() {
	StaleSelectionsTotal.Inc()
}

// RecordFetchRetriesExhausted records a dataset fetch that failed after all retries.
func RecordFetchRetriesExhausted() {
	FetchRetriesExhaustedTotal.Inc()
}

// UpdateActiveEdition updates the active edition gauges.
func UpdateActiveEdition(runners, lapRecords int) {
	ActiveEditionRunners.Set(float64(runners))
	ActiveEditionLapRecords.Set(float64(lapRecords))
}

// UpdateChartCacheHitRatio updates the chart cache hit ratio gauge.
func UpdateChartCacheHitRatio(ratio float64) {
	ChartCacheHitRatio.Set(ratio)
}
