package api

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

func dialStream(t *testing.T) *websocket.Conn {
	t.Helper()
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) streamEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev streamEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestStreamPositionAdvisory(t *testing.T) {
	conn := dialStream(t)

	inside := models.GeoPoint{Lat: 1.0, Lng: 104.0}
	require.NoError(t, conn.WriteJSON(streamMessage{Type: "position", Position: &inside}))
	ev := readEvent(t, conn)
	assert.Equal(t, "advisory", ev.Type)
	require.NotNil(t, ev.Advisory)
	assert.True(t, ev.Advisory.Warning)

	outside := models.GeoPoint{Lat: 1.3, Lng: 103.8}
	require.NoError(t, conn.WriteJSON(streamMessage{Type: "position", Position: &outside}))
	ev = readEvent(t, conn)
	require.NotNil(t, ev.Advisory)
	assert.False(t, ev.Advisory.Warning)
}

func TestStreamRejectsBadMessages(t *testing.T) {
	conn := dialStream(t)

	require.NoError(t, conn.WriteJSON(streamMessage{Type: "teleport"}))
	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev.Type)
	require.NotNil(t, ev.Error)
	assert.Equal(t, models.CodeInvalidRequest, ev.Error.Code)

	bad := models.GeoPoint{Lat: 100}
	require.NoError(t, conn.WriteJSON(streamMessage{Type: "position", Position: &bad}))
	ev = readEvent(t, conn)
	require.NotNil(t, ev.Error)
	assert.Equal(t, models.CodeInvalidCoordinate, ev.Error.Code)
}

func TestStreamWatchRecalculates(t *testing.T) {
	conn := dialStream(t)

	req := models.RouteRequest{Origin: origin, Destination: destination}
	require.NoError(t, conn.WriteJSON(streamMessage{Type: "watch", Route: &req, IntervalSeconds: 1}))

	for i := 0; i < 2; i++ {
		ev := readEvent(t, conn)
		assert.Equal(t, "route", ev.Type)
		require.NotNil(t, ev.Route)
		assert.Equal(t, 100, ev.Route.SafetyScore)
	}

	require.NoError(t, conn.WriteJSON(streamMessage{Type: "unwatch"}))
	// A tick may already be in flight; skip route events until the ack.
	for {
		ev := readEvent(t, conn)
		if ev.Type == "unwatched" {
			break
		}
		assert.Equal(t, "route", ev.Type)
	}
}

func TestStreamWatchUnreachable(t *testing.T) {
	conn := dialStream(t)

	req := models.RouteRequest{Origin: landlocked, Destination: destination}
	require.NoError(t, conn.WriteJSON(streamMessage{Type: "watch", Route: &req}))
	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev.Type)
	require.NotNil(t, ev.Error)
	assert.Equal(t, models.CodeUnreachableByWater, ev.Error.Code)
}

func TestRepeatStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan struct{})
	go func() {
		repeat(ctx, 5*time.Millisecond, func(context.Context) {
			calls++
			if calls == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("repeat did not stop after cancel")
	}
	assert.GreaterOrEqual(t, calls, 3)
}
