package services

import (
	"context"
	"strings"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/geo"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/google/uuid"
)

// TrafficLedger aggregates recent vessel traffic reports.
type TrafficLedger struct {
	store   db.TrafficStore
	now     func() time.Time
	timeout time.Duration
	window  time.Duration
}

func NewTrafficLedger(store db.TrafficStore, now func() time.Time, timeout, window time.Duration) *TrafficLedger {
	if window <= 0 {
		window = models.DefaultTrafficWindow
	}
	return &TrafficLedger{store: store, now: now, timeout: timeout, window: window}
}

// Recent returns every report inside the lookback window. A window of zero
// means the ledger default.
func (l *TrafficLedger) Recent(ctx context.Context, window time.Duration) ([]models.TrafficReport, error) {
	if window <= 0 {
		window = l.window
	}
	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	since := l.now().Add(-window)
	reports, err := l.store.RecentTraffic(ctx, since)
	if err != nil {
		return nil, ledgerError("traffic", err)
	}
	out := reports[:0]
	for _, r := range reports {
		if r.ReportedAt.After(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

// RecentTrafficNear returns the reports inside the window within radiusNm of point.
func (l *TrafficLedger) RecentTrafficNear(ctx context.Context, point models.GeoPoint, radiusNm float64, window time.Duration) ([]models.TrafficReport, error) {
	reports, err := l.Recent(ctx, window)
	if err != nil {
		return nil, err
	}
	return trafficNear(reports, point, radiusNm), nil
}

// Heatmap is every recent report, for map overlays.
func (l *TrafficLedger) Heatmap(ctx context.Context) ([]models.TrafficReport, error) {
	reports, err := l.Recent(ctx, 0)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.TrafficReport{}
	}
	return reports, nil
}

func (l *TrafficLedger) Report(ctx context.Context, in models.TrafficReportInput) (models.TrafficReport, error) {
	if err := in.Validate(); err != nil {
		return models.TrafficReport{}, err
	}
	reportedAt := l.now().UTC()
	if in.ReportedAt != nil && !in.ReportedAt.IsZero() {
		reportedAt = in.ReportedAt.UTC()
	}
	r := models.TrafficReport{
		ID:          uuid.NewString(),
		Location:    in.Location,
		Density:     in.Density,
		VesselCount: in.VesselCount,
		PortCode:    in.PortCode,
		ReportedAt:  reportedAt,
		ReportedBy:  strings.TrimSpace(in.ReportedBy),
	}

	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()
	if err := l.store.InsertTraffic(ctx, r); err != nil {
		return models.TrafficReport{}, ledgerError("traffic", err)
	}
	return r, nil
}

func trafficNear(reports []models.TrafficReport, point models.GeoPoint, radiusNm float64) []models.TrafficReport {
	var near []models.TrafficReport
	for _, r := range reports {
		if geo.DistanceNm(r.Location, point) <= radiusNm {
			near = append(near, r)
		}
	}
	return near
}

// AggregateDensity averages the density ordinals and buckets the mean.
// No reports means low traffic.
func AggregateDensity(reports []models.TrafficReport) models.Density {
	if len(reports) == 0 {
		return models.DensityLow
	}
	sum := 0
	for _, r := range reports {
		sum += r.Density.Ordinal()
	}
	mean := float64(sum) / float64(len(reports))
	switch {
	case mean <= 1.5:
		return models.DensityLow
	case mean <= 2.5:
		return models.DensityMedium
	case mean <= 3.5:
		return models.DensityHigh
	default:
		return models.DensityCritical
	}
}
