package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/ultraboard/internal/logger"
	"github.com/yourusername/ultraboard/internal/metrics"
	"github.com/yourusername/ultraboard/internal/models"
)

// Snapshot is one fully loaded edition: both collections, immutable
// after construction. The ID distinguishes loads so derived-data
// caches keyed on it go stale the moment the edition switches.
type Snapshot struct {
	ID       uuid.UUID
	Edition  string
	LoadedAt time.Time

	results   []models.RaceResult
	resultIdx map[int]int
	lapsByBib map[int][]models.LapRecord
	lapCount  int
}

// newSnapshot indexes the raw collections for lookup by bib. Lap
// order within a runner is preserved as lap sequence.
func newSnapshot(edition string, results []models.RaceResult, laps []models.LapRecord) *Snapshot {
	snap := &Snapshot{
		ID:        uuid.New(),
		Edition:   edition,
		LoadedAt:  time.Now().UTC(),
		results:   results,
		resultIdx: make(map[int]int, len(results)),
		lapsByBib: make(map[int][]models.LapRecord),
		lapCount:  len(laps),
	}
	for i, r := range results {
		snap.resultIdx[r.Bib] = i
	}
	for _, lap := range laps {
		snap.lapsByBib[lap.Bib] = append(snap.lapsByBib[lap.Bib], lap)
	}
	return snap
}

// Results returns the edition's standings in original ranking order.
func (s *Snapshot) Results() []models.RaceResult {
	return s.results
}

// ResultByBib resolves a runner by bib number.
func (s *Snapshot) ResultByBib(bib int) (models.RaceResult, bool) {
	i, ok := s.resultIdx[bib]
	if !ok {
		return models.RaceResult{}, false
	}
	return s.results[i], true
}

// LapsFor returns a runner's lap records in lap order. Unknown bibs,
// including stale selections from a previous edition, yield nil.
func (s *Snapshot) LapsFor(bib int) []models.LapRecord {
	return s.lapsByBib[bib]
}

// SplitsFor returns a runner's raw lap splits in lap order.
func (s *Snapshot) SplitsFor(bib int) []string {
	laps := s.lapsByBib[bib]
	splits := make([]string, len(laps))
	for i, lap := range laps {
		splits[i] = lap.LapSplit
	}
	return splits
}

// MaxLaps returns the longest lap sequence in the edition, which is
// the chart's lap axis length.
func (s *Snapshot) MaxLaps() int {
	max := 0
	for _, laps := range s.lapsByBib {
		if len(laps) > max {
			max = len(laps)
		}
	}
	return max
}

// LapRecordCount returns the total number of lap records loaded.
func (s *Snapshot) LapRecordCount() int {
	return s.lapCount
}

// Store owns the active edition snapshot. Switching editions discards
// and replaces both collections atomically.
type Store struct {
	source Source
	logger *logger.DatasetLogger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a store reading from the given source.
func NewStore(source Source, datasetLogger *logger.DatasetLogger) *Store {
	return &Store{source: source, logger: datasetLogger}
}

// Switch loads both collections for the edition concurrently, waits
// for both, then replaces the active snapshot. On any fetch error the
// previous snapshot stays active; the core is never handed partial
// data.
func (st *Store) Switch(ctx context.Context, loc Location) (*Snapshot, error) {
	start := time.Now()

	var (
		results []models.RaceResult
		laps    []models.LapRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = st.source.FetchResults(gctx, loc)
		return err
	})
	g.Go(func() error {
		var err error
		laps, err = st.source.FetchLaps(gctx, loc)
		return err
	})
	if err := g.Wait(); err != nil {
		st.logger.LogEditionLoadFailed(loc.Edition, err)
		metrics.RecordDatasetLoadFailure(loc.Edition)
		return nil, err
	}

	if len(results) == 0 {
		st.logger.LogEditionLoadFailed(loc.Edition, models.ErrEmptyDataset)
		metrics.RecordDatasetLoadFailure(loc.Edition)
		return nil, models.ErrEmptyDataset
	}

	snap := newSnapshot(loc.Edition, results, laps)

	st.mu.Lock()
	st.snap = snap
	st.mu.Unlock()

	elapsed := time.Since(start)
	st.logger.LogEditionLoaded(loc.Edition, len(results), len(laps), float64(elapsed.Milliseconds()))
	metrics.RecordDatasetLoad(loc.Edition, elapsed.Seconds())
	metrics.UpdateActiveEdition(len(results), len(laps))

	return snap, nil
}

// Snapshot returns the active snapshot, or false when nothing has
// been loaded yet.
func (st *Store) Snapshot() (*Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.snap == nil {
		return nil, false
	}
	return st.snap, true
}

// Ping reports readiness for the health server.
func (st *Store) Ping(ctx context.Context) error {
	if _, ok := st.Snapshot(); !ok {
		return models.ErrSnapshotNotLoaded
	}
	return nil
}
