// Package service assembles chart-ready datasets from the active
// edition snapshot and the analytics core.
package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ultraboard/internal/analytics"
	"github.com/yourusername/ultraboard/internal/config"
	"github.com/yourusername/ultraboard/internal/dataset"
	"github.com/yourusername/ultraboard/internal/metrics"
	"github.com/yourusername/ultraboard/internal/models"
)

// Series is one named curve over the shared chart axis.
type Series struct {
	Name   string             `json:"name"`
	Points []analytics.Sample `json:"points"`
}

// RunnerInfo carries per-runner annotations for the lap chart:
// fastest/slowest lap markers and the summary statistics.
type RunnerInfo struct {
	Bib      int               `json:"bib"`
	Name     string            `json:"name"`
	MinIndex int               `json:"min_index"`
	MaxIndex int               `json:"max_index"`
	Summary  analytics.Summary `json:"summary"`
}

// ChartDataset is the chart-ready output consumed by the dashboard:
// named series over a shared axis, plus background sections for the
// lap chart.
type ChartDataset struct {
	Kind     string              `json:"kind"`
	Edition  string              `json:"edition"`
	Axis     string              `json:"axis"`
	Labels   []string            `json:"labels"`
	Series   []Series            `json:"series"`
	Runners  []RunnerInfo        `json:"runners,omitempty"`
	Sections []analytics.Section `json:"sections,omitempty"`
}

// ChartService computes chart datasets against the active snapshot.
// All analytics state lives in the inputs; the service only adds
// caching and configuration.
type ChartService struct {
	store  *dataset.Store
	cfg    *config.Config
	cache  *ChartCache
	logger *logrus.Logger
}

// NewChartService creates a chart service.
func NewChartService(store *dataset.Store, cfg *config.Config, cache *ChartCache, log *logrus.Logger) *ChartService {
	return &ChartService{store: store, cfg: cfg, cache: cache, logger: log}
}

// InvalidateSnapshot flushes cached datasets computed against the
// given snapshot, called after an edition switch retires it.
func (s *ChartService) InvalidateSnapshot(snapshotID string) {
	s.cache.InvalidateSnapshot(snapshotID)
}

// RunnerChart builds the per-runner lap chart for the selected bibs.
// Bibs not present in the active edition, e.g. selections left over
// from a previous edition, are dropped rather than failing the whole
// request.
func (s *ChartService) RunnerChart(bibs []int) (*ChartDataset, error) {
	snap, ok := s.store.Snapshot()
	if !ok {
		return nil, models.ErrSnapshotNotLoaded
	}

	key := chartKey(snap.ID.String(), "laps", bibKey(bibs))
	if cached := s.cache.Get(key); cached != nil {
		return cached, nil
	}

	start := time.Now()
	selected := s.resolveSelection(snap, bibs)

	opts := analytics.SeriesOptions{
		SelectionCount: len(selected),
		Window:         s.cfg.Analytics.EMAWindow,
		ClampMin:       s.cfg.Analytics.ChartMinMinutes,
		ClampMax:       s.cfg.Analytics.ChartMaxMinutes,
	}

	axisLen := 0
	built := make([]analytics.RunnerSeries, 0, len(selected))
	for _, r := range selected {
		rs := analytics.BuildRunnerSeries(r.Bib, r.Name, snap.SplitsFor(r.Bib), opts)
		if len(rs.Laps) > axisLen {
			axisLen = len(rs.Laps)
		}
		built = append(built, rs)
	}

	ds := &ChartDataset{
		Kind:    "laps",
		Edition: snap.Edition,
		Axis:    "lap",
		Labels:  lapLabels(axisLen),
	}
	for _, rs := range built {
		ds.Runners = append(ds.Runners, RunnerInfo{
			Bib:      rs.Bib,
			Name:     rs.Name,
			MinIndex: rs.MinIndex,
			MaxIndex: rs.MaxIndex,
			Summary:  rs.Summary,
		})
		ds.Series = append(ds.Series, Series{Name: rs.Name, Points: padSeries(rs.Laps, axisLen)})
		if rs.Trend != nil {
			ds.Series = append(ds.Series, Series{Name: rs.Name + " (trend)", Points: padSeries(rs.Trend, axisLen)})
		}
		if rs.EMA != nil {
			ds.Series = append(ds.Series, Series{Name: rs.Name + " (EMA)", Points: padSeries(rs.EMA, axisLen)})
		}
		if rs.BandUpper != nil {
			ds.Series = append(ds.Series, Series{Name: rs.Name + " (upper band)", Points: padSeries(rs.BandUpper, axisLen)})
			ds.Series = append(ds.Series, Series{Name: rs.Name + " (lower band)", Points: padSeries(rs.BandLower, axisLen)})
		}
	}

	if axisLen > 0 {
		if edition, ok := s.cfg.EditionByName(snap.Edition); ok {
			ds.Sections = analytics.SectionPlan(axisLen, edition.SectionRules())
		}
	}

	s.cache.Set(key, ds)
	metrics.RecordChartRequest("laps", time.Since(start).Seconds())
	return ds, nil
}

// CohortTable computes the placement analysis rows for the active
// edition, in original ranking order. Editions the analysis is not
// scoped to return an empty slice.
func (s *ChartService) CohortTable() ([]analytics.CohortRecord, error) {
	snap, ok := s.store.Snapshot()
	if !ok {
		return nil, models.ErrSnapshotNotLoaded
	}

	edition, ok := s.cfg.EditionByName(snap.Edition)
	if !ok || !edition.CohortEnabled {
		return []analytics.CohortRecord{}, nil
	}

	runners := make([]analytics.CohortRunner, 0, len(snap.Results()))
	for _, r := range snap.Results() {
		runners = append(runners, analytics.CohortRunner{
			Rank:   r.Place,
			Name:   r.Name,
			Splits: snap.SplitsFor(r.Bib),
		})
	}
	return analytics.AnalyzeCohort(runners, s.cfg.Analytics.CohortThresholdMinutes), nil
}

// CohortChart builds the placement-vs-fatigue chart: runners in
// reverse rank order (worst placed first) with the EMA and best-fit
// overlays computed along the display axis.
func (s *ChartService) CohortChart() (*ChartDataset, error) {
	snap, ok := s.store.Snapshot()
	if !ok {
		return nil, models.ErrSnapshotNotLoaded
	}

	key := chartKey(snap.ID.String(), "cohort", "")
	if cached := s.cache.Get(key); cached != nil {
		return cached, nil
	}

	start := time.Now()
	records, err := s.CohortTable()
	if err != nil {
		return nil, err
	}

	reversed := make([]analytics.CohortRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	ds := &ChartDataset{
		Kind:    "cohort",
		Edition: snap.Edition,
		Axis:    "rank",
	}
	percents := make([]analytics.Sample, len(reversed))
	for i, r := range reversed {
		ds.Labels = append(ds.Labels, fmt.Sprintf("#%d %s", r.Rank, r.Name))
		percents[i] = analytics.Value(r.PercentOverThreshold)
	}
	ds.Series = append(ds.Series, Series{Name: "% laps over threshold", Points: percents})

	if len(reversed) > 0 {
		overlay := analytics.BuildCohortOverlay(reversed, s.cfg.Analytics.EMAWindow)
		ds.Series = append(ds.Series, Series{Name: "EMA", Points: analytics.DenseSeries(overlay.EMA)})
		ds.Series = append(ds.Series, Series{Name: "Best fit", Points: overlay.Trend})
	}

	s.cache.Set(key, ds)
	metrics.RecordChartRequest("cohort", time.Since(start).Seconds())
	return ds, nil
}

// SectionPlan exposes the background bands for the active edition's
// full lap axis.
func (s *ChartService) SectionPlan() ([]analytics.Section, error) {
	snap, ok := s.store.Snapshot()
	if !ok {
		return nil, models.ErrSnapshotNotLoaded
	}
	edition, ok := s.cfg.EditionByName(snap.Edition)
	if !ok {
		return nil, models.ErrUnknownEdition
	}
	return analytics.SectionPlan(snap.MaxLaps(), edition.SectionRules()), nil
}

// resolveSelection dedupes the requested bibs, keeps selection order
// and drops bibs unknown to the snapshot.
func (s *ChartService) resolveSelection(snap *dataset.Snapshot, bibs []int) []models.RaceResult {
	seen := make(map[int]bool, len(bibs))
	selected := make([]models.RaceResult, 0, len(bibs))
	for _, bib := range bibs {
		if seen[bib] {
			continue
		}
		seen[bib] = true
		r, ok := snap.ResultByBib(bib)
		if !ok {
			metrics.RecordStaleSelection()
			s.logger.WithFields(logrus.Fields{"bib": bib, "edition": snap.Edition}).
				Debug("Dropping selected bib not present in edition")
			continue
		}
		selected = append(selected, r)
	}
	return selected
}

func padSeries(points []analytics.Sample, length int) []analytics.Sample {
	if len(points) >= length {
		return points
	}
	padded := make([]analytics.Sample, length)
	copy(padded, points)
	return padded
}

func lapLabels(axisLen int) []string {
	labels := make([]string, axisLen)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}

func chartKey(snapshotID, kind, extra string) string {
	return snapshotID + ":" + kind + ":" + extra
}

func bibKey(bibs []int) string {
	parts := make([]string, len(bibs))
	for i, b := range bibs {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ",")
}
