package services

import (
	"context"
	"log"
	"sort"

	"github.com/DEEPML1818/MarineTrack-app-sub000/geo"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"golang.org/x/sync/errgroup"
)

const (
	DirectRouteName  = "Direct Route"
	SaferRouteName   = "Safer Route"
	CoastalRouteName = "Coastal Route"

	// SaferOffsetNm is the lateral distance of the safer variant's deviation
	// waypoint from the route midpoint.
	SaferOffsetNm = 3.0
	// coastalFraction places the coastal deviation along the longitude span.
	coastalFraction = 0.3
	// coastalSpeedFactor is the 18 kn against 20 kn ratio of coastal caution.
	coastalSpeedFactor = 18.0 / 20.0
)

type variant struct {
	name  string
	via   models.GeoPoint
	speed float64
}

// AlternateGenerator derives the safer and coastal variants of a direct route.
type AlternateGenerator struct {
	resolver *RouteResolver
	planner  planner
}

func NewAlternateGenerator(resolver *RouteResolver, analyzer *RiskAnalyzer) *AlternateGenerator {
	return &AlternateGenerator{resolver: resolver, planner: planner{analyzer: analyzer}}
}

// Generate returns the direct route plus its variants, safest first. A
// variant that cannot be resolved is left out.
func (g *AlternateGenerator) Generate(ctx context.Context, origin, destination models.GeoPoint, direct models.Route) ([]models.Route, error) {
	variants := variantsFor(origin, destination, direct)
	results := make([]*models.Route, len(variants))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, v := range variants {
		eg.Go(func() error {
			raw, err := g.resolver.ResolveVia(egCtx, origin, v.via, destination)
			if err == nil {
				var r models.Route
				r, err = g.planner.plan(egCtx, v.name, raw, v.speed)
				if err == nil {
					results[i] = &r
					return nil
				}
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Skipping %s via %s: %v", v.name, v.via, err)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	direct.Alternatives = []models.Route{}
	routes := []models.Route{direct}
	for _, r := range results {
		if r != nil {
			routes = append(routes, *r)
		}
	}
	RankRoutes(routes)
	return routes, nil
}

// RankRoutes orders routes by safety score, highest first. Equal scores keep
// their generation order.
func RankRoutes(routes []models.Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].SafetyScore > routes[j].SafetyScore
	})
}

func variantsFor(origin, destination models.GeoPoint, direct models.Route) []variant {
	mid := routeMidpoint(direct.Waypoints, origin, destination)

	var out []variant
	if len(direct.HazardsOnRoute) > 0 {
		bearing := geo.NormalizeBearing(geo.BearingDeg(origin, destination) + 90)
		out = append(out, variant{
			name:  SaferRouteName,
			via:   geo.Destination(mid, bearing, SaferOffsetNm),
			speed: direct.SpeedKnots,
		})
	}
	out = append(out, variant{
		name: CoastalRouteName,
		via: models.GeoPoint{
			Lat: mid.Lat,
			Lng: origin.Lng + coastalFraction*(destination.Lng-origin.Lng),
		},
		speed: direct.SpeedKnots * coastalSpeedFactor,
	})
	return out
}

// routeMidpoint is the centre waypoint of an odd-length route, or the mean of
// the two central waypoints otherwise.
func routeMidpoint(waypoints []models.RouteWaypoint, origin, destination models.GeoPoint) models.GeoPoint {
	n := len(waypoints)
	switch {
	case n == 0:
		return models.GeoPoint{Lat: (origin.Lat + destination.Lat) / 2, Lng: (origin.Lng + destination.Lng) / 2}
	case n%2 == 1:
		return waypoints[n/2].Point
	}
	a, b := waypoints[n/2-1].Point, waypoints[n/2].Point
	return models.GeoPoint{Lat: (a.Lat + b.Lat) / 2, Lng: (a.Lng + b.Lng) / 2}
}
