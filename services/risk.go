package services

import (
	"context"
	"fmt"
	"log"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

const (
	DefaultHazardCorridorNm = 5.0
	DefaultTrafficRadiusNm  = 10.0

	highTrafficPenalty   = 15
	mediumTrafficPenalty = 5
	scoreAdvisoryCutoff  = 70

	safetyDataUnavailable = "Safety data unavailable - hazard and traffic data could not be loaded"
)

// Assessment is everything the risk analyzer adds to a resolved route.
type Assessment struct {
	SafetyScore     int
	TrafficDensity  models.Density
	HazardsOnRoute  []models.HazardHit
	Recommendations []string
	Prediction      models.Prediction
	Degraded        bool
}

// RiskAnalyzer scores a route against the hazard and traffic ledgers.
type RiskAnalyzer struct {
	hazards         *HazardLedger
	traffic         *TrafficLedger
	corridorNm      float64
	trafficRadiusNm float64
}

func NewRiskAnalyzer(hazards *HazardLedger, traffic *TrafficLedger, corridorNm, trafficRadiusNm float64) *RiskAnalyzer {
	if corridorNm <= 0 {
		corridorNm = DefaultHazardCorridorNm
	}
	if trafficRadiusNm <= 0 {
		trafficRadiusNm = DefaultTrafficRadiusNm
	}
	return &RiskAnalyzer{
		hazards:         hazards,
		traffic:         traffic,
		corridorNm:      corridorNm,
		trafficRadiusNm: trafficRadiusNm,
	}
}

// Analyze consults both ledgers. A ledger that cannot be read contributes
// nothing and the assessment is flagged degraded instead of failing.
// Cancellation of ctx itself is still returned as an error.
func (a *RiskAnalyzer) Analyze(ctx context.Context, waypoints []models.RouteWaypoint) (Assessment, error) {
	points := make([]models.GeoPoint, len(waypoints))
	for i, wp := range waypoints {
		points[i] = wp.Point
	}

	degraded := false

	hits, err := a.hazards.ActiveHazardsAlongRoute(ctx, points, a.corridorNm)
	if err != nil {
		if ctx.Err() != nil {
			return Assessment{}, ctx.Err()
		}
		log.Printf("Risk analysis degraded, hazard ledger: %v", err)
		hits = []models.HazardHit{}
		degraded = true
	}

	densities := make([]models.Density, 0, len(points))
	reports, err := a.traffic.Recent(ctx, 0)
	if err != nil {
		if ctx.Err() != nil {
			return Assessment{}, ctx.Err()
		}
		log.Printf("Risk analysis degraded, traffic ledger: %v", err)
		degraded = true
	} else {
		for _, p := range points {
			densities = append(densities, AggregateDensity(trafficNear(reports, p, a.trafficRadiusNm)))
		}
	}

	return assess(hits, densities, degraded), nil
}

// assess is the pure scoring step.
func assess(hits []models.HazardHit, densities []models.Density, degraded bool) Assessment {
	score := 100
	weather := false
	for _, h := range hits {
		score -= h.Hazard.Severity.Weight()
		if h.Hazard.Type == models.HazardWeather {
			weather = true
		}
	}

	density := models.DensityLow
	for _, d := range densities {
		density = models.MaxDensity(density, d)
	}
	highTraffic := density.AtLeast(models.DensityHigh)
	switch {
	case highTraffic:
		score -= highTrafficPenalty
	case density == models.DensityMedium:
		score -= mediumTrafficPenalty
	}

	score = max(0, min(100, score))

	recs := []string{}
	if len(hits) > 0 {
		recs = append(recs, fmt.Sprintf("Warning: %d hazard(s) detected along route", len(hits)))
	}
	if highTraffic {
		recs = append(recs, "High traffic density - reduce speed and maintain vigilance")
	}
	if score < scoreAdvisoryCutoff {
		recs = append(recs, "Route safety score below optimal - consider alternative route")
	}
	if degraded {
		recs = append(recs, safetyDataUnavailable)
	}

	return Assessment{
		SafetyScore:     score,
		TrafficDensity:  density,
		HazardsOnRoute:  hits,
		Recommendations: recs,
		Prediction:      predict(hits, density, weather),
		Degraded:        degraded,
	}
}

func predict(hits []models.HazardHit, density models.Density, weather bool) models.Prediction {
	p := models.Prediction{
		EstimatedDelayHours: 0.5 * float64(len(hits)),
		WeatherRisk:         models.RiskLow,
		CollisionRisk:       models.RiskLow,
		FuelEfficiency:      85,
	}
	if weather {
		p.WeatherRisk = models.RiskHigh
	}
	switch {
	case density.AtLeast(models.DensityHigh):
		p.CollisionRisk = models.RiskHigh
		p.FuelEfficiency -= 15
	case density == models.DensityMedium:
		p.CollisionRisk = models.RiskMedium
		p.FuelEfficiency -= 8
	}
	return p
}
