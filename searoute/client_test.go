package searoute

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

const singaporeStrait = `{
  "type": "Feature",
  "geometry": {"type": "LineString", "coordinates": [[103.80, 1.30], [103.825, 1.28], [103.85, 1.26]]},
  "properties": {"length": 3.9, "units": "nm"}
}`

func TestClientResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route", r.URL.Path)
		assert.Equal(t, "103.8,1.3", r.URL.Query().Get("origin"))
		assert.Equal(t, "103.85,1.26", r.URL.Query().Get("destination"))
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(singaporeStrait))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	path, err := c.Resolve(context.Background(), models.GeoPoint{Lat: 1.30, Lng: 103.80}, models.GeoPoint{Lat: 1.26, Lng: 103.85})
	require.NoError(t, err)
	require.Len(t, path.Points, 3)
	assert.Equal(t, models.GeoPoint{Lat: 1.28, Lng: 103.825}, path.Points[1])
	assert.InDelta(t, 3.9, path.LengthNm, 1e-9)
}

func TestClientKilometreLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"geometry":{"type":"LineString","coordinates":[[0,0],[1,0]]},"properties":{"length":18.52,"units":"km"}}`))
	}))
	defer srv.Close()

	path, err := NewClient(srv.URL, time.Second).Resolve(context.Background(), models.GeoPoint{}, models.GeoPoint{Lng: 1})
	require.NoError(t, err)
	assert.InDelta(t, 10, path.LengthNm, 1e-9)
}

func TestClientNoPath(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"error":"no route"}`},
		{"unprocessable", http.StatusUnprocessableEntity, `{"error":"point on land"}`},
		{"empty line", http.StatusOK, `{"geometry":{"type":"LineString","coordinates":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second, WithBackoff(time.Millisecond)).
				Resolve(context.Background(), models.GeoPoint{Lat: 20, Lng: 78}, models.GeoPoint{Lat: 1.26, Lng: 103.85})
			assert.True(t, errors.Is(err, ErrNoSeaPath), "got %v", err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no-path answers are not retried")
		})
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(singaporeStrait))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, WithRetries(2), WithBackoff(time.Millisecond))
	path, err := c.Resolve(context.Background(), models.GeoPoint{Lat: 1.30, Lng: 103.80}, models.GeoPoint{Lat: 1.26, Lng: 103.85})
	require.NoError(t, err)
	assert.Len(t, path.Points, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, WithRetries(1), WithBackoff(time.Millisecond)).
		Resolve(context.Background(), models.GeoPoint{}, models.GeoPoint{Lat: 1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSeaPath))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL, 5*time.Second).Resolve(ctx, models.GeoPoint{}, models.GeoPoint{Lat: 1})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}
