// Package dataset loads and owns the per-edition race datasets. Each
// edition is a pair of static read-only collections, results and lap
// records, fetched together and replaced wholesale on an edition
// switch.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ultraboard/internal/models"
)

// Location names one edition's datasets.
type Location struct {
	Edition    string
	ResultsURL string
	LapsURL    string
}

// Source fetches the raw collections behind an edition.
type Source interface {
	// FetchResults retrieves the edition's final standings.
	FetchResults(ctx context.Context, loc Location) ([]models.RaceResult, error)

	// FetchLaps retrieves the edition's lap records, ordered per
	// runner in lap sequence.
	FetchLaps(ctx context.Context, loc Location) ([]models.LapRecord, error)

	// Name returns the name of the source
	Name() string
}

// StaticJSONSource reads the datasets from static JSON documents over
// HTTP.
type StaticJSONSource struct {
	client *RateLimitedHTTPClient
	logger *logrus.Logger
}

// NewStaticJSONSource creates a source backed by the rate-limited client.
func NewStaticJSONSource(client *RateLimitedHTTPClient, logger *logrus.Logger) *StaticJSONSource {
	return &StaticJSONSource{client: client, logger: logger}
}

// Name returns the source name.
func (s *StaticJSONSource) Name() string {
	return "static_json"
}

// FetchResults retrieves and decodes the results collection.
func (s *StaticJSONSource) FetchResults(ctx context.Context, loc Location) ([]models.RaceResult, error) {
	var results []models.RaceResult
	if err := s.fetchJSON(ctx, loc.ResultsURL, &results); err != nil {
		return nil, fmt.Errorf("fetching results for edition %s: %w", loc.Edition, err)
	}
	return results, nil
}

// FetchLaps retrieves and decodes the lap record collection.
func (s *StaticJSONSource) FetchLaps(ctx context.Context, loc Location) ([]models.LapRecord, error) {
	var laps []models.LapRecord
	if err := s.fetchJSON(ctx, loc.LapsURL, &laps); err != nil {
		return nil, fmt.Errorf("fetching laps for edition %s: %w", loc.Edition, err)
	}
	return laps, nil
}

func (s *StaticJSONSource) fetchJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
