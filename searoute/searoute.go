// Package searoute talks to the external sea-path service: given two points
// it returns a water-following polyline, never one that crosses land.
package searoute

import (
	"context"
	"errors"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// ErrNoSeaPath is returned when the service cannot connect the two points by
// navigable water.
var ErrNoSeaPath = errors.New("no sea path between points")

// Path is an ordered polyline plus the length the service reports for it.
type Path struct {
	Points   []models.GeoPoint
	LengthNm float64
}

// Resolver is the sea-path primitive.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination models.GeoPoint) (Path, error)
}
