package db

import (
	"context"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// HazardStore is durable storage for hazard reports. ActiveHazards filters on
// expiry only; spatial filtering is the caller's job.
type HazardStore interface {
	ActiveHazards(ctx context.Context, now time.Time) ([]models.Hazard, error)
	GetHazard(ctx context.Context, id string) (models.Hazard, bool, error)
	InsertHazard(ctx context.Context, h models.Hazard) error
	// VoteHazard increments one counter and reports whether the id exists.
	VoteHazard(ctx context.Context, id string, dir models.VoteDirection) (bool, error)
}

// TrafficStore is append-only storage for traffic reports.
type TrafficStore interface {
	RecentTraffic(ctx context.Context, since time.Time) ([]models.TrafficReport, error)
	InsertTraffic(ctx context.Context, r models.TrafficReport) error
}

// ZoneStore holds the static zone reference data.
type ZoneStore interface {
	Zones(ctx context.Context) ([]models.Zone, error)
	UpsertZones(ctx context.Context, zones []models.Zone) error
}

// Ledger bundles the three stores behind one backend.
type Ledger interface {
	HazardStore
	TrafficStore
	ZoneStore
	Close() error
}
