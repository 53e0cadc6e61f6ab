// Package server exposes the dashboard API: edition listing and
// switching, the sortable results table, and the chart datasets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/ultraboard/internal/config"
	"github.com/yourusername/ultraboard/internal/dataset"
	"github.com/yourusername/ultraboard/internal/metrics"
	"github.com/yourusername/ultraboard/internal/models"
	"github.com/yourusername/ultraboard/internal/service"
)

// Server is the dashboard API server.
type Server struct {
	cfg    *config.Config
	store  *dataset.Store
	charts *service.ChartService
	logger *logrus.Logger
	server *http.Server
}

// New creates the API server.
func New(cfg *config.Config, store *dataset.Store, charts *service.ChartService, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, store: store, charts: charts, logger: log}
}

// Routes builds the handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/editions", s.handleEditions)
	mux.HandleFunc("/api/editions/switch", s.handleSwitch)
	mux.HandleFunc("/api/results", s.handleResults)
	mux.HandleFunc("/api/chart/laps", s.handleLapChart)
	mux.HandleFunc("/api/chart/cohort", s.handleCohortChart)
	mux.HandleFunc("/api/cohort", s.handleCohortTable)
	mux.HandleFunc("/api/sections", s.handleSections)
	if s.cfg.Metrics.Enabled {
		mux.Handle(s.cfg.Metrics.Path, metrics.Handler())
	}
	return s.withRequestID(mux)
}

// Start runs the API server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	s.logger.WithField("port", s.cfg.Server.Port).Info("API server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// withRequestID tags every request with a correlation ID, echoed in
// the response headers and the access log.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Debug("Request handled")
	})
}

type editionView struct {
	Name          string `json:"name"`
	CohortEnabled bool   `json:"cohort_enabled"`
	Active        bool   `json:"active"`
}

// handleEditions lists the configured editions and flags the active one.
func (s *Server) handleEditions(w http.ResponseWriter, r *http.Request) {
	active := ""
	if snap, ok := s.store.Snapshot(); ok {
		active = snap.Edition
	}

	views := make([]editionView, 0, len(s.cfg.Editions))
	for _, e := range s.cfg.Editions {
		views = append(views, editionView{
			Name:          e.Name,
			CohortEnabled: e.CohortEnabled,
			Active:        e.Name == active,
		})
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleSwitch loads the requested edition and makes it active. The
// previous edition's data is fully replaced; on failure the previous
// snapshot keeps serving.
func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	name := r.URL.Query().Get("edition")
	edition, ok := s.cfg.EditionByName(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, models.ErrUnknownEdition.Error())
		return
	}

	previousID := ""
	if previous, loaded := s.store.Snapshot(); loaded {
		previousID = previous.ID.String()
	}

	snap, err := s.store.Switch(r.Context(), dataset.Location{
		Edition:    edition.Name,
		ResultsURL: edition.ResultsURL,
		LapsURL:    edition.LapsURL,
	})
	if err != nil {
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("loading edition %s: %v", name, err))
		return
	}

	if previousID != "" {
		s.charts.InvalidateSnapshot(previousID)
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"edition":     snap.Edition,
		"runners":     len(snap.Results()),
		"lap_records": snap.LapRecordCount(),
		"loaded_at":   snap.LoadedAt,
	})
}

// handleResults serves the standings table, optionally sorted.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Snapshot()
	if !ok {
		s.writeError(w, http.StatusServiceUnavailable, models.ErrSnapshotNotLoaded.Error())
		return
	}

	column := service.SortColumn(r.URL.Query().Get("sort"))
	if column == "" {
		column = service.SortByPlace
	}
	ascending := r.URL.Query().Get("dir") != "desc"

	s.writeJSON(w, http.StatusOK, service.SortResults(snap.Results(), column, ascending))
}

// handleLapChart serves the per-runner lap chart for ?bibs=11,42.
func (s *Server) handleLapChart(w http.ResponseWriter, r *http.Request) {
	bibs, err := parseBibs(r.URL.Query().Get("bibs"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := s.charts.RunnerChart(bibs)
	if err != nil {
		s.writeChartError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds)
}

// handleCohortChart serves the placement-vs-fatigue chart.
func (s *Server) handleCohortChart(w http.ResponseWriter, r *http.Request) {
	ds, err := s.charts.CohortChart()
	if err != nil {
		s.writeChartError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds)
}

// handleCohortTable serves the placement analysis rows.
func (s *Server) handleCohortTable(w http.ResponseWriter, r *http.Request) {
	records, err := s.charts.CohortTable()
	if err != nil {
		s.writeChartError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleSections serves the course section bands for the active edition.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.charts.SectionPlan()
	if err != nil {
		s.writeChartError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sections)
}

func (s *Server) writeChartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrSnapshotNotLoaded):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, models.ErrUnknownEdition):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Encoding response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// parseBibs parses a comma separated bib list. An empty parameter is
// an empty selection, not an error.
func parseBibs(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	bibs := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		bib, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid bib %q", p)
		}
		bibs = append(bibs, bib)
	}
	return bibs, nil
}
