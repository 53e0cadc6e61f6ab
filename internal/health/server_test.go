package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandleHealth(t *testing.T) {
	s := NewServer(Config{ServiceName: "ultraboard", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, 200, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ultraboard", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHandleReadyBeforeSnapshot(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "ultraboard",
		Dataset:     pingerFunc(func(ctx context.Context) error { return errors.New("no snapshot loaded") }),
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, 503, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["dataset"], "no snapshot loaded")
}

func TestHandleReadyWithSnapshot(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "ultraboard",
		Dataset:     pingerFunc(func(ctx context.Context) error { return nil }),
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, 200, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Checks["dataset"])
}

func TestHandleReadyNotMarkedReady(t *testing.T) {
	s := NewServer(Config{ServiceName: "ultraboard"})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, 503, rec.Code)
}
