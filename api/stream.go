package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamReadLimit    = 64 << 10
	minWatchInterval   = time.Second
)

// streamMessage is what clients send over /stream.
type streamMessage struct {
	Type            string               `json:"type"`
	Position        *models.GeoPoint     `json:"position,omitempty"`
	Route           *models.RouteRequest `json:"route,omitempty"`
	IntervalSeconds float64              `json:"intervalSeconds,omitempty"`
}

// streamEvent is what the server pushes back.
type streamEvent struct {
	Type     string           `json:"type"`
	Advisory *models.Advisory `json:"advisory,omitempty"`
	Route    *models.Route    `json:"route,omitempty"`
	Error    *ErrorBody       `json:"error,omitempty"`
}

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowAll || origin == "" || allowed[origin]
		},
	}
}

// session is one websocket client. Position updates are answered with an
// advisory each; a watch recalculates a route on a timer until it is
// replaced, cancelled, or the connection closes.
type session struct {
	conn          *websocket.Conn
	engine        Engine
	watchInterval time.Duration

	writeMu sync.Mutex

	ctx         context.Context
	cancelWatch context.CancelFunc
	wg          sync.WaitGroup
}

func StreamHandler(engine Engine, upgrader websocket.Upgrader, watchInterval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Websocket upgrade failed: %v", err)
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		s := &session{conn: conn, engine: engine, watchInterval: watchInterval, ctx: ctx}
		defer func() {
			cancel()
			s.stopWatch()
			s.wg.Wait()
			conn.Close()
		}()

		log.Printf("Stream session opened from %s", r.RemoteAddr)
		s.readLoop()
		log.Printf("Stream session closed from %s", r.RemoteAddr)
	}
}

func (s *session) readLoop() {
	s.conn.SetReadLimit(streamReadLimit)
	for {
		var msg streamMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Stream read error: %v", err)
			}
			return
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg streamMessage) {
	switch msg.Type {
	case "position":
		if msg.Position == nil {
			s.sendError(fmt.Errorf("%w: position message needs a position", models.ErrInvalidRequest))
			return
		}
		advisory, err := s.engine.CheckAdvisory(s.ctx, *msg.Position)
		if err != nil {
			s.sendError(err)
			return
		}
		s.send(streamEvent{Type: "advisory", Advisory: &advisory})

	case "watch":
		if msg.Route == nil {
			s.sendError(fmt.Errorf("%w: watch message needs a route request", models.ErrInvalidRequest))
			return
		}
		interval := time.Duration(msg.IntervalSeconds * float64(time.Second))
		if interval <= 0 {
			interval = s.watchInterval
		}
		s.startWatch(*msg.Route, max(interval, minWatchInterval))

	case "unwatch":
		s.stopWatch()
		s.send(streamEvent{Type: "unwatched"})

	default:
		s.sendError(fmt.Errorf("%w: unknown message type %q", models.ErrInvalidRequest, msg.Type))
	}
}

func (s *session) startWatch(req models.RouteRequest, interval time.Duration) {
	s.stopWatch()

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelWatch = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		repeat(ctx, interval, func(ctx context.Context) {
			route, err := s.engine.CalculateRoute(ctx, req)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				s.sendError(err)
				return
			}
			s.send(streamEvent{Type: "route", Route: &route})
		})
	}()
}

func (s *session) stopWatch() {
	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}
}

func (s *session) sendError(err error) {
	body := errorBody(err)
	s.send(streamEvent{Type: "error", Error: &body})
}

func (s *session) send(ev streamEvent) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	if err := s.conn.WriteJSON(ev); err != nil {
		log.Printf("Stream write error: %v", err)
	}
}
