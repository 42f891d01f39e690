package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/geo"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/google/uuid"
)

// HazardLedger answers proximity questions over the active hazard reports.
type HazardLedger struct {
	store         db.HazardStore
	now           func() time.Time
	timeout       time.Duration
	defaultExpiry time.Duration
}

func NewHazardLedger(store db.HazardStore, now func() time.Time, timeout, defaultExpiry time.Duration) *HazardLedger {
	if defaultExpiry <= 0 {
		defaultExpiry = models.DefaultHazardValidity
	}
	return &HazardLedger{store: store, now: now, timeout: timeout, defaultExpiry: defaultExpiry}
}

// active loads the hazards that have not expired yet. Expiry is re-checked
// here so a lax store can never leak an expired hazard.
func (l *HazardLedger) active(ctx context.Context) ([]models.Hazard, error) {
	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	now := l.now()
	hazards, err := l.store.ActiveHazards(ctx, now)
	if err != nil {
		return nil, ledgerError("hazard", err)
	}
	out := hazards[:0]
	for _, h := range hazards {
		if h.IsActive(now) {
			out = append(out, h)
		}
	}
	return out, nil
}

// ActiveHazardsNear returns active hazards within radiusNm of point, nearest first.
func (l *HazardLedger) ActiveHazardsNear(ctx context.Context, point models.GeoPoint, radiusNm float64) ([]models.HazardHit, error) {
	hazards, err := l.active(ctx)
	if err != nil {
		return nil, err
	}

	hits := []models.HazardHit{}
	for _, h := range hazards {
		d := geo.DistanceNm(h.Location, point)
		if d <= radiusNm {
			hits = append(hits, models.HazardHit{Hazard: h, DistanceNm: d})
		}
	}
	sortHits(hits)
	return hits, nil
}

// ActiveHazardsAlongRoute keeps every active hazard whose distance to the
// nearest waypoint is within corridorNm. Waypoints are sampled, segments are not.
func (l *HazardLedger) ActiveHazardsAlongRoute(ctx context.Context, waypoints []models.GeoPoint, corridorNm float64) ([]models.HazardHit, error) {
	hazards, err := l.active(ctx)
	if err != nil {
		return nil, err
	}
	return hazardsAlong(hazards, waypoints, corridorNm), nil
}

func hazardsAlong(hazards []models.Hazard, waypoints []models.GeoPoint, corridorNm float64) []models.HazardHit {
	hits := []models.HazardHit{}
	if len(waypoints) == 0 {
		return hits
	}
	seen := make(map[string]bool, len(hazards))
	for _, h := range hazards {
		if seen[h.ID] {
			continue
		}
		best := geo.DistanceNm(h.Location, waypoints[0])
		for _, wp := range waypoints[1:] {
			if d := geo.DistanceNm(h.Location, wp); d < best {
				best = d
			}
		}
		if best <= corridorNm {
			seen[h.ID] = true
			hits = append(hits, models.HazardHit{Hazard: h, DistanceNm: best})
		}
	}
	sortHits(hits)
	return hits
}

func sortHits(hits []models.HazardHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].DistanceNm < hits[j].DistanceNm
	})
}

// Report validates and appends a new hazard with a fresh id and validity window.
func (l *HazardLedger) Report(ctx context.Context, r models.HazardReport) (models.Hazard, error) {
	if err := r.Validate(); err != nil {
		return models.Hazard{}, err
	}

	validity := l.defaultExpiry
	if r.ExpiryHours > 0 {
		validity = time.Duration(r.ExpiryHours * float64(time.Hour))
	}
	if validity <= 0 {
		return models.Hazard{}, fmt.Errorf("%w: expiry window is too short", models.ErrInvalidRequest)
	}

	now := l.now().UTC()
	h := models.Hazard{
		ID:          uuid.NewString(),
		Type:        r.Type,
		Severity:    r.Severity,
		Location:    r.Location,
		Description: strings.TrimSpace(r.Description),
		ReportedBy:  strings.TrimSpace(r.ReportedBy),
		VesselID:    r.VesselID,
		ReportedAt:  now,
		ExpiresAt:   now.Add(validity),
	}

	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()
	if err := l.store.InsertHazard(ctx, h); err != nil {
		return models.Hazard{}, ledgerError("hazard", err)
	}
	return h, nil
}

// Get returns one hazard, expired or not.
func (l *HazardLedger) Get(ctx context.Context, id string) (models.Hazard, error) {
	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	h, ok, err := l.store.GetHazard(ctx, id)
	if err != nil {
		return models.Hazard{}, ledgerError("hazard", err)
	}
	if !ok {
		return models.Hazard{}, fmt.Errorf("%w: %s", models.ErrUnknownHazard, id)
	}
	return h, nil
}

// Vote bumps the up or down counter. There is no per-voter tracking: every
// call counts. Unknown ids report false without an error.
func (l *HazardLedger) Vote(ctx context.Context, id string, dir models.VoteDirection) (bool, error) {
	if _, err := models.ParseVoteDirection(string(dir)); err != nil {
		return false, err
	}
	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	ok, err := l.store.VoteHazard(ctx, id, dir)
	if err != nil {
		return false, ledgerError("hazard", err)
	}
	return ok, nil
}
