package services

import (
	"context"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// planner turns a resolved path into a scored, instructed Route.
type planner struct {
	analyzer *RiskAnalyzer
}

func (p planner) plan(ctx context.Context, name string, raw RawPath, speedKnots float64) (models.Route, error) {
	waypoints := SynthesizeDirections(Annotate(raw))

	a, err := p.analyzer.Analyze(ctx, waypoints)
	if err != nil {
		return models.Route{}, err
	}

	return models.Route{
		Name:            name,
		Waypoints:       waypoints,
		DistanceNm:      raw.DistanceNm,
		DurationMinutes: DurationMinutes(raw.DistanceNm, speedKnots),
		SpeedKnots:      speedKnots,
		SafetyScore:     a.SafetyScore,
		TrafficDensity:  a.TrafficDensity,
		HazardsOnRoute:  a.HazardsOnRoute,
		Recommendations: a.Recommendations,
		Prediction:      a.Prediction,
		Degraded:        a.Degraded,
		Alternatives:    []models.Route{},
	}, nil
}
