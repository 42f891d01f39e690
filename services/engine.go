package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/DEEPML1818/MarineTrack-app-sub000/searoute"
)

const DefaultSpeedKnots = 15.0

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	LookupTimeout       time.Duration
	DefaultSpeedKnots   float64
	HazardCorridorNm    float64
	TrafficRadiusNm     float64
	TrafficWindow       time.Duration
	DefaultHazardExpiry time.Duration
	// LogDir receives daily JSON event logs. Empty disables the file copy.
	LogDir string
	Now    func() time.Time
}

func DefaultOptions() Options {
	return Options{
		LookupTimeout:       8 * time.Second,
		DefaultSpeedKnots:   DefaultSpeedKnots,
		HazardCorridorNm:    DefaultHazardCorridorNm,
		TrafficRadiusNm:     DefaultTrafficRadiusNm,
		TrafficWindow:       models.DefaultTrafficWindow,
		DefaultHazardExpiry: models.DefaultHazardValidity,
		Now:                 time.Now,
	}
}

type engineStats struct {
	routesCalculated uint64
	unreachable      uint64
	degraded         uint64
	hazardsReported  uint64
	trafficReported  uint64
	votes            uint64
	errors           uint64
}

// Engine is the route safety and advisory engine. It keeps no per-request
// state and is safe for concurrent use.
type Engine struct {
	resolver   *RouteResolver
	hazards    *HazardLedger
	traffic    *TrafficLedger
	zones      db.ZoneStore
	planner    planner
	alternates *AlternateGenerator
	opts       Options
	startTime  time.Time
	stats      engineStats
}

func NewEngine(primitive searoute.Resolver, ledger db.Ledger, opts Options) *Engine {
	def := DefaultOptions()
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = def.LookupTimeout
	}
	if opts.DefaultSpeedKnots <= 0 {
		opts.DefaultSpeedKnots = def.DefaultSpeedKnots
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}

	resolver := NewRouteResolver(primitive, opts.LookupTimeout)
	hazards := NewHazardLedger(ledger, opts.Now, opts.LookupTimeout, opts.DefaultHazardExpiry)
	traffic := NewTrafficLedger(ledger, opts.Now, opts.LookupTimeout, opts.TrafficWindow)
	analyzer := NewRiskAnalyzer(hazards, traffic, opts.HazardCorridorNm, opts.TrafficRadiusNm)

	return &Engine{
		resolver:   resolver,
		hazards:    hazards,
		traffic:    traffic,
		zones:      ledger,
		planner:    planner{analyzer: analyzer},
		alternates: NewAlternateGenerator(resolver, analyzer),
		opts:       opts,
		startTime:  time.Now(),
	}
}

func (e *Engine) speedFor(requested float64) (float64, error) {
	switch {
	case math.IsNaN(requested) || math.IsInf(requested, 0) || requested < 0:
		return 0, fmt.Errorf("%w: speedKnots must be a positive number", models.ErrInvalidRequest)
	case requested == 0:
		return e.opts.DefaultSpeedKnots, nil
	}
	return requested, nil
}

// CalculateRoute resolves, instructs and scores the direct route and, when
// asked, its ranked alternatives.
func (e *Engine) CalculateRoute(ctx context.Context, req models.RouteRequest) (models.Route, error) {
	if err := req.Origin.Validate(); err != nil {
		return models.Route{}, fmt.Errorf("origin: %w", err)
	}
	if err := req.Destination.Validate(); err != nil {
		return models.Route{}, fmt.Errorf("destination: %w", err)
	}
	speed, err := e.speedFor(req.SpeedKnots)
	if err != nil {
		return models.Route{}, err
	}

	start := time.Now()
	raw, err := e.resolver.Resolve(ctx, req.Origin, req.Destination)
	if err != nil {
		if errors.Is(err, models.ErrUnreachableByWater) {
			atomic.AddUint64(&e.stats.unreachable, 1)
			e.logEvent("route_unreachable", "No sea path between the requested points", map[string]interface{}{
				"origin":      req.Origin.String(),
				"destination": req.Destination.String(),
			})
		} else {
			atomic.AddUint64(&e.stats.errors, 1)
		}
		return models.Route{}, err
	}

	route, err := e.planner.plan(ctx, DirectRouteName, raw, speed)
	if err != nil {
		atomic.AddUint64(&e.stats.errors, 1)
		return models.Route{}, err
	}

	if req.IncludeAlternatives {
		alts, err := e.alternates.Generate(ctx, req.Origin, req.Destination, route)
		if err != nil {
			atomic.AddUint64(&e.stats.errors, 1)
			return models.Route{}, err
		}
		route.Alternatives = alts
	}

	atomic.AddUint64(&e.stats.routesCalculated, 1)
	if route.Degraded {
		atomic.AddUint64(&e.stats.degraded, 1)
		e.logEvent("ledger_degraded", "Route scored without full safety data", map[string]interface{}{
			"origin":      req.Origin.String(),
			"destination": req.Destination.String(),
		})
	}
	e.logEvent("route_calculated", "Route calculated", map[string]interface{}{
		"origin":       req.Origin.String(),
		"destination":  req.Destination.String(),
		"distance_nm":  route.DistanceNm,
		"waypoints":    len(route.Waypoints),
		"safety_score": route.SafetyScore,
		"alternatives": len(route.Alternatives),
		"duration":     time.Since(start).Round(time.Millisecond).String(),
	})
	return route, nil
}

// ReportHazard appends a hazard to the ledger.
func (e *Engine) ReportHazard(ctx context.Context, r models.HazardReport) (models.Hazard, error) {
	h, err := e.hazards.Report(ctx, r)
	if err != nil {
		return models.Hazard{}, err
	}
	atomic.AddUint64(&e.stats.hazardsReported, 1)
	e.logEvent("hazard_reported", "Hazard reported", map[string]interface{}{
		"hazard_id": h.ID,
		"type":      h.Type,
		"severity":  h.Severity,
		"location":  h.Location.String(),
	})
	return h, nil
}

func (e *Engine) QueryHazardsNear(ctx context.Context, point models.GeoPoint, radiusNm float64) ([]models.HazardHit, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(radiusNm) || radiusNm <= 0 {
		return nil, fmt.Errorf("%w: radiusNm must be positive", models.ErrInvalidRequest)
	}
	return e.hazards.ActiveHazardsNear(ctx, point, radiusNm)
}

func (e *Engine) GetHazard(ctx context.Context, id string) (models.Hazard, error) {
	return e.hazards.Get(ctx, id)
}

// VoteHazard reports false for an unknown id.
func (e *Engine) VoteHazard(ctx context.Context, id string, dir models.VoteDirection) (bool, error) {
	ok, err := e.hazards.Vote(ctx, id, dir)
	if err != nil {
		return false, err
	}
	if ok {
		atomic.AddUint64(&e.stats.votes, 1)
		e.logEvent("vote", "Hazard vote recorded", map[string]interface{}{
			"hazard_id": id,
			"direction": dir,
		})
	}
	return ok, nil
}

func (e *Engine) QueryTrafficHeatmap(ctx context.Context) ([]models.TrafficReport, error) {
	return e.traffic.Heatmap(ctx)
}

func (e *Engine) ReportTraffic(ctx context.Context, in models.TrafficReportInput) (models.TrafficReport, error) {
	r, err := e.traffic.Report(ctx, in)
	if err != nil {
		return models.TrafficReport{}, err
	}
	atomic.AddUint64(&e.stats.trafficReported, 1)
	return r, nil
}

func (e *Engine) ListZones(ctx context.Context) ([]models.Zone, error) {
	ctx, cancel := withTimeout(ctx, e.opts.LookupTimeout)
	defer cancel()

	zones, err := e.zones.Zones(ctx)
	if err != nil {
		return nil, ledgerError("zone", err)
	}
	if zones == nil {
		zones = []models.Zone{}
	}
	return zones, nil
}

// CheckAdvisory evaluates a single position update against the zones.
func (e *Engine) CheckAdvisory(ctx context.Context, point models.GeoPoint) (models.Advisory, error) {
	if err := point.Validate(); err != nil {
		return models.Advisory{}, err
	}
	zones, err := e.ListZones(ctx)
	if err != nil {
		return models.Advisory{}, err
	}
	return CheckAdvisory(point, zones), nil
}
