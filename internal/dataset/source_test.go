package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	cfg.RateLimit = 1000
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewRateLimitedHTTPClient(cfg, log)
}

const resultsBody = `[
	{"bib": 11, "place": 1, "name": "First", "age": 38, "state": "TN",
	 "laps_completed": 2, "total_distance_miles": 8.36,
	 "total_distance_km": 13.45, "race_time": "1:42:00"}
]`

const lapsBody = `[
	{"bib": 11, "lap_split": "50:00"},
	{"bib": 11, "lap_split": "52:00"}
]`

func TestStaticJSONSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/results.json":
			fmt.Fprint(w, resultsBody)
		case "/laps.json":
			fmt.Fprint(w, lapsBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := testClient()
	defer client.Close()
	source := NewStaticJSONSource(client, logrus.New())

	loc := Location{
		Edition:    "2022",
		ResultsURL: server.URL + "/results.json",
		LapsURL:    server.URL + "/laps.json",
	}

	results, err := source.FetchResults(context.Background(), loc)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 11, results[0].Bib)
	assert.Equal(t, "First", results[0].Name)
	assert.InDelta(t, 8.36, results[0].MilesFloat(), 1e-9)

	laps, err := source.FetchLaps(context.Background(), loc)
	require.NoError(t, err)
	require.Len(t, laps, 2)
	assert.Equal(t, "50:00", laps[0].LapSplit)
}

func TestStaticJSONSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, lapsBody)
	}))
	defer server.Close()

	client := testClient()
	defer client.Close()
	source := NewStaticJSONSource(client, logrus.New())

	laps, err := source.FetchLaps(context.Background(), Location{Edition: "2022", LapsURL: server.URL})
	require.NoError(t, err)
	assert.Len(t, laps, 2)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestStaticJSONSourceNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient()
	defer client.Close()
	source := NewStaticJSONSource(client, logrus.New())

	_, err := source.FetchResults(context.Background(), Location{Edition: "2022", ResultsURL: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestStaticJSONSourceMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not": "an array"}`)
	}))
	defer server.Close()

	client := testClient()
	defer client.Close()
	source := NewStaticJSONSource(client, logrus.New())

	_, err := source.FetchLaps(context.Background(), Location{Edition: "2022", LapsURL: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}
