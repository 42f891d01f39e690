package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/DEEPML1818/MarineTrack-app-sub000/searoute"
)

var (
	testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	sgOrigin      = models.GeoPoint{Lat: 1.30, Lng: 103.80}
	sgMid         = models.GeoPoint{Lat: 1.28, Lng: 103.825}
	sgDestination = models.GeoPoint{Lat: 1.26, Lng: 103.85}
	inland        = models.GeoPoint{Lat: 20.0, Lng: 78.0}
)

func fixedNow() time.Time { return testNow }

// stubSeaPath knows one three-point Singapore path, treats inland as land,
// and joins every other pair with a straight two-point leg.
type stubSeaPath struct {
	calls atomic.Int32
	block bool
}

func (s *stubSeaPath) Resolve(ctx context.Context, origin, destination models.GeoPoint) (searoute.Path, error) {
	s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return searoute.Path{}, ctx.Err()
	}
	if origin == inland || destination == inland {
		return searoute.Path{}, searoute.ErrNoSeaPath
	}
	if origin == sgOrigin && destination == sgDestination {
		return searoute.Path{Points: []models.GeoPoint{sgOrigin, sgMid, sgDestination}, LengthNm: 3.84}, nil
	}
	return searoute.Path{Points: []models.GeoPoint{origin, destination}}, nil
}

var errLedgerDown = errors.New("connection refused")

// brokenLedger fails the reads selected by its flags.
type brokenLedger struct {
	*db.MemoryLedger
	hazardsDown bool
	trafficDown bool
}

func (b *brokenLedger) ActiveHazards(ctx context.Context, now time.Time) ([]models.Hazard, error) {
	if b.hazardsDown {
		return nil, errLedgerDown
	}
	return b.MemoryLedger.ActiveHazards(ctx, now)
}

func (b *brokenLedger) RecentTraffic(ctx context.Context, since time.Time) ([]models.TrafficReport, error) {
	if b.trafficDown {
		return nil, errLedgerDown
	}
	return b.MemoryLedger.RecentTraffic(ctx, since)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = fixedNow
	opts.LookupTimeout = 2 * time.Second
	return opts
}

func hazardAt(id string, p models.GeoPoint, sev models.Severity, typ models.HazardType) models.Hazard {
	return models.Hazard{
		ID: id, Type: typ, Severity: sev, Location: p,
		ReportedBy: "mv-test",
		ReportedAt: testNow.Add(-time.Hour), ExpiresAt: testNow.Add(23 * time.Hour),
	}
}

func trafficAt(id string, p models.GeoPoint, d models.Density, age time.Duration) models.TrafficReport {
	return models.TrafficReport{
		ID: id, Location: p, Density: d, VesselCount: 4,
		ReportedAt: testNow.Add(-age), ReportedBy: "vts",
	}
}
