package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"

	"github.com/DEEPML1818/MarineTrack-app-sub000/middleware"
)

// DefaultWatchInterval is how often a watched route is recalculated when the
// client does not ask for a specific interval.
const DefaultWatchInterval = 30 * time.Second

type ServerOptions struct {
	AllowedOrigins []string
	WatchInterval  time.Duration
}

// Server is the HTTP transport in front of the engine.
type Server struct {
	router chi.Router
	server *http.Server
	addr   string
	engine Engine
	opts   ServerOptions
}

func NewServer(addr string, engine Engine, opts ServerOptions) *Server {
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = DefaultWatchInterval
	}
	s := &Server{
		addr:   addr,
		engine: engine,
		opts:   opts,
		router: chi.NewRouter(),
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.Logging, middleware.Recovery, middleware.CorsMiddleware(s.opts.AllowedOrigins))

	r.Get("/healthz", HealthHandler(s.engine))
	r.Get("/stream", StreamHandler(s.engine, newUpgrader(s.opts.AllowedOrigins), s.opts.WatchInterval))

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })

		r.Post("/routes", CalculateRouteHandler(s.engine))

		r.Route("/hazards", func(r chi.Router) {
			r.Post("/", ReportHazardHandler(s.engine))
			r.Get("/", HazardsNearHandler(s.engine))
			r.Get("/{id}", GetHazardHandler(s.engine))
			r.Post("/{id}/vote", VoteHazardHandler(s.engine))
		})

		r.Get("/traffic/heatmap", TrafficHeatmapHandler(s.engine))
		r.Post("/traffic", ReportTrafficHandler(s.engine))

		r.Get("/zones", ZonesHandler(s.engine))
		r.Get("/zones/advisory", AdvisoryHandler(s.engine))
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	log.Printf("Listening on %s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
