package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ultraboard/internal/analytics"
	"github.com/yourusername/ultraboard/internal/config"
	"github.com/yourusername/ultraboard/internal/dataset"
	"github.com/yourusername/ultraboard/internal/logger"
	"github.com/yourusername/ultraboard/internal/models"
)

type stubSource struct {
	results []models.RaceResult
	laps    []models.LapRecord
}

func (s *stubSource) FetchResults(ctx context.Context, loc dataset.Location) ([]models.RaceResult, error) {
	return s.results, nil
}

func (s *stubSource) FetchLaps(ctx context.Context, loc dataset.Location) ([]models.LapRecord, error) {
	return s.laps, nil
}

func (s *stubSource) Name() string { return "stub" }

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{
			EMAWindow:              6,
			CohortThresholdMinutes: 55,
			ChartMinMinutes:        30,
			ChartMaxMinutes:        60,
		},
		Editions: []config.EditionConfig{
			{Name: "2022", CohortEnabled: true},
			{Name: "2023"},
		},
	}
}

func newTestService(t *testing.T, source dataset.Source, edition string) *ChartService {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	store := dataset.NewStore(source, logger.NewDatasetLogger(log))
	if edition != "" {
		_, err := store.Switch(context.Background(), dataset.Location{Edition: edition})
		require.NoError(t, err)
	}

	return NewChartService(store, testConfig(), NewChartCache(time.Minute, 100), log)
}

func fixtureSource() *stubSource {
	return &stubSource{
		results: []models.RaceResult{
			{Bib: 11, Place: 1, Name: "First", LapsCompleted: 3},
			{Bib: 42, Place: 2, Name: "Second", LapsCompleted: 2},
			{Bib: 7, Place: 3, Name: "Third", LapsCompleted: 2},
		},
		laps: []models.LapRecord{
			{Bib: 11, LapSplit: "48:00"},
			{Bib: 11, LapSplit: "50:00"},
			{Bib: 11, LapSplit: "52:00"},
			{Bib: 42, LapSplit: "56:00"},
			{Bib: 42, LapSplit: "58:00"},
			{Bib: 7, LapSplit: "57:00"},
			{Bib: 7, LapSplit: "59:00"},
		},
	}
}

func TestRunnerChartNoSnapshot(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "")
	_, err := svc.RunnerChart([]int{11})
	assert.ErrorIs(t, err, models.ErrSnapshotNotLoaded)
}

func TestRunnerChartSingleRunner(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	ds, err := svc.RunnerChart([]int{11})
	require.NoError(t, err)

	assert.Equal(t, "laps", ds.Kind)
	assert.Equal(t, "lap", ds.Axis)
	assert.Equal(t, []string{"1", "2", "3"}, ds.Labels)

	require.Len(t, ds.Runners, 1)
	assert.Equal(t, 11, ds.Runners[0].Bib)
	assert.InDelta(t, 50, ds.Runners[0].Summary.Mean, 1e-9)
	assert.Equal(t, 0, ds.Runners[0].MinIndex)
	assert.Equal(t, 2, ds.Runners[0].MaxIndex)

	// One runner: raw, trend, EMA, and both band curves.
	names := make([]string, len(ds.Series))
	for i, s := range ds.Series {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"First", "First (trend)", "First (EMA)", "First (upper band)", "First (lower band)"}, names)

	require.NotEmpty(t, ds.Sections)
	assert.Equal(t, 1, ds.Sections[0].StartLap)
}

func TestRunnerChartOverlayGating(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	// Three runners: trend still on, bands off.
	ds, err := svc.RunnerChart([]int{11, 42, 7})
	require.NoError(t, err)
	assert.Len(t, ds.Runners, 3)
	for _, s := range ds.Series {
		assert.NotContains(t, s.Name, "band")
	}

	trendCount := 0
	for _, s := range ds.Series {
		if len(s.Name) > 8 && s.Name[len(s.Name)-7:] == "(trend)" {
			trendCount++
		}
	}
	assert.Equal(t, 3, trendCount)
}

func TestRunnerChartPadsShorterRunners(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	ds, err := svc.RunnerChart([]int{11, 42})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, ds.Labels)

	for _, s := range ds.Series {
		assert.Len(t, s.Points, 3, "series %q must span the shared axis", s.Name)
		if s.Name == "Second" {
			assert.True(t, !s.Points[2].Valid, "padding shows as a gap")
		}
	}
}

func TestRunnerChartDropsStaleBibs(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	ds, err := svc.RunnerChart([]int{999, 11, 11})
	require.NoError(t, err)

	// Stale bib dropped, duplicate collapsed.
	require.Len(t, ds.Runners, 1)
	assert.Equal(t, 11, ds.Runners[0].Bib)
}

func TestRunnerChartEmptySelection(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	ds, err := svc.RunnerChart(nil)
	require.NoError(t, err)
	assert.Empty(t, ds.Series)
	assert.Empty(t, ds.Labels)
	assert.Empty(t, ds.Sections)
}

func TestRunnerChartCached(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	first, err := svc.RunnerChart([]int{11, 42})
	require.NoError(t, err)
	second, err := svc.RunnerChart([]int{11, 42})
	require.NoError(t, err)
	assert.Same(t, first, second, "second request is served from cache")
}

func TestEditionSwitchInvalidatesCachedCharts(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	source := fixtureSource()
	store := dataset.NewStore(source, logger.NewDatasetLogger(log))
	first, err := store.Switch(context.Background(), dataset.Location{Edition: "2022"})
	require.NoError(t, err)

	cache := NewChartCache(time.Minute, 100)
	svc := NewChartService(store, testConfig(), cache, log)

	cached, err := svc.RunnerChart([]int{11})
	require.NoError(t, err)

	source.laps = []models.LapRecord{{Bib: 11, LapSplit: "45:00"}}
	_, err = store.Switch(context.Background(), dataset.Location{Edition: "2023"})
	require.NoError(t, err)
	svc.InvalidateSnapshot(first.ID.String())

	fresh, err := svc.RunnerChart([]int{11})
	require.NoError(t, err)
	assert.NotSame(t, cached, fresh)
	assert.Equal(t, "2023", fresh.Edition)
	assert.Len(t, fresh.Labels, 1)
}

func TestCohortTableEnabledEdition(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	records, err := svc.CohortTable()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Rows come back in ranking order.
	assert.Equal(t, 1, records[0].Rank)
	assert.InDelta(t, 0, records[0].PercentOverThreshold, 1e-9)
	assert.Equal(t, 2, records[1].Rank)
	assert.InDelta(t, 100, records[1].PercentOverThreshold, 1e-9)
	assert.Equal(t, 3, records[2].Rank)
	assert.InDelta(t, 100, records[2].PercentOverThreshold, 1e-9)
}

func TestCohortTableDisabledEdition(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2023")

	records, err := svc.CohortTable()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCohortChartReversesRankOrder(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	ds, err := svc.CohortChart()
	require.NoError(t, err)

	assert.Equal(t, "cohort", ds.Kind)
	assert.Equal(t, "rank", ds.Axis)
	require.Len(t, ds.Labels, 3)
	assert.Equal(t, "#3 Third", ds.Labels[0], "worst placed first")
	assert.Equal(t, "#1 First", ds.Labels[2])

	require.Len(t, ds.Series, 3)
	assert.Equal(t, "% laps over threshold", ds.Series[0].Name)
	assert.Equal(t, "EMA", ds.Series[1].Name)
	assert.Equal(t, "Best fit", ds.Series[2].Name)

	pcts := ds.Series[0].Points
	assert.InDelta(t, 100, pcts[0].Minutes, 1e-9)
	assert.InDelta(t, 0, pcts[2].Minutes, 1e-9)
}

func TestSectionPlanForActiveEdition(t *testing.T) {
	svc := newTestService(t, fixtureSource(), "2022")

	sections, err := svc.SectionPlan()
	require.NoError(t, err)
	require.NotEmpty(t, sections)

	// Axis runs to the longest lap sequence.
	last := sections[len(sections)-1]
	assert.Equal(t, 3, last.EndLap)
	assert.Equal(t, analytics.TerrainTrail, sections[0].Terrain)
}
