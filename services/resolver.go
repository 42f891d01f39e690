package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/geo"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/DEEPML1818/MarineTrack-app-sub000/searoute"
)

// RawPath is the sea-path primitive's answer before any annotation.
type RawPath struct {
	Waypoints  []models.GeoPoint
	DistanceNm float64
}

// RouteResolver wraps the external sea-path primitive.
type RouteResolver struct {
	primitive searoute.Resolver
	timeout   time.Duration
}

func NewRouteResolver(primitive searoute.Resolver, timeout time.Duration) *RouteResolver {
	return &RouteResolver{primitive: primitive, timeout: timeout}
}

// Resolve asks the primitive for a water-following path. A path that cannot
// be found is ErrUnreachableByWater, never a straight-line stand-in.
func (r *RouteResolver) Resolve(ctx context.Context, origin, destination models.GeoPoint) (RawPath, error) {
	lookupCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	path, err := r.primitive.Resolve(lookupCtx, origin, destination)
	switch {
	case err == nil:
	case errors.Is(err, searoute.ErrNoSeaPath):
		return RawPath{}, fmt.Errorf("%w (from %s to %s)", models.ErrUnreachableByWater, origin, destination)
	case ctx.Err() != nil:
		return RawPath{}, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return RawPath{}, fmt.Errorf("%w: sea path lookup after %v", models.ErrTimeout, r.timeout)
	default:
		return RawPath{}, fmt.Errorf("sea path lookup failed: %w", err)
	}

	if len(path.Points) < 2 {
		return RawPath{}, fmt.Errorf("%w (from %s to %s)", models.ErrUnreachableByWater, origin, destination)
	}

	raw := RawPath{Waypoints: path.Points, DistanceNm: path.LengthNm}
	if raw.DistanceNm <= 0 {
		raw.DistanceNm = polylineNm(raw.Waypoints)
	}
	return raw, nil
}

// ResolveVia resolves origin->via and via->destination and joins the legs,
// dropping the duplicated joint.
func (r *RouteResolver) ResolveVia(ctx context.Context, origin, via, destination models.GeoPoint) (RawPath, error) {
	first, err := r.Resolve(ctx, origin, via)
	if err != nil {
		return RawPath{}, err
	}
	second, err := r.Resolve(ctx, via, destination)
	if err != nil {
		return RawPath{}, err
	}

	points := make([]models.GeoPoint, 0, len(first.Waypoints)+len(second.Waypoints))
	points = append(points, first.Waypoints...)
	rest := second.Waypoints
	if len(rest) > 0 && rest[0] == points[len(points)-1] {
		rest = rest[1:]
	}
	points = append(points, rest...)
	return RawPath{Waypoints: points, DistanceNm: first.DistanceNm + second.DistanceNm}, nil
}

func polylineNm(points []models.GeoPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geo.DistanceNm(points[i-1], points[i])
	}
	return total
}

// Annotate attaches the distance and bearing to the next point. The last
// waypoint has neither.
func Annotate(raw RawPath) []models.RouteWaypoint {
	out := make([]models.RouteWaypoint, len(raw.Waypoints))
	for i, p := range raw.Waypoints {
		out[i].Point = p
		if i+1 < len(raw.Waypoints) {
			next := raw.Waypoints[i+1]
			bearing := geo.BearingDeg(p, next)
			out[i].DistanceToNextNm = geo.DistanceNm(p, next)
			out[i].BearingToNextDeg = &bearing
		}
	}
	return out
}

// DurationMinutes converts a distance at a speed in knots (nm per hour).
func DurationMinutes(distanceNm, speedKnots float64) float64 {
	if speedKnots <= 0 {
		return 0
	}
	return distanceNm / speedKnots * 60
}
