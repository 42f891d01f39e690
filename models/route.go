package models

type Maneuver string

const (
	ManeuverDepart          Maneuver = "depart"
	ManeuverContinue        Maneuver = "continue"
	ManeuverTurnSlightRight Maneuver = "turn-slight-right"
	ManeuverTurnRight       Maneuver = "turn-right"
	ManeuverTurnSlightLeft  Maneuver = "turn-slight-left"
	ManeuverTurnLeft        Maneuver = "turn-left"
	ManeuverArrive          Maneuver = "arrive"
	// ManeuverNone marks an exact 180 degree reversal, which has no label.
	ManeuverNone Maneuver = ""
)

type RouteWaypoint struct {
	Point            GeoPoint `json:"point"`
	DistanceToNextNm float64  `json:"distanceToNextNm"`
	BearingToNextDeg *float64 `json:"bearingToNextDeg,omitempty"`
	Maneuver         Maneuver `json:"maneuver"`
	Instruction      string   `json:"instruction"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Prediction is the coarse outlook derived alongside the safety score.
type Prediction struct {
	EstimatedDelayHours float64   `json:"estimatedDelayHours"`
	WeatherRisk         RiskLevel `json:"weatherRisk"`
	CollisionRisk       RiskLevel `json:"collisionRisk"`
	FuelEfficiency      int       `json:"fuelEfficiency"`
}

type Route struct {
	Name            string          `json:"name"`
	Waypoints       []RouteWaypoint `json:"waypoints"`
	DistanceNm      float64         `json:"distanceNm"`
	DurationMinutes float64         `json:"durationMinutes"`
	SpeedKnots      float64         `json:"speedKnots"`
	SafetyScore     int             `json:"safetyScore"`
	TrafficDensity  Density         `json:"trafficDensity"`
	HazardsOnRoute  []HazardHit     `json:"hazardsOnRoute"`
	Recommendations []string        `json:"recommendations"`
	Prediction      Prediction      `json:"prediction"`
	Degraded        bool            `json:"degraded,omitempty"`
	Alternatives    []Route         `json:"alternatives"`
}

// RouteRequest is the input of a route calculation.
type RouteRequest struct {
	Origin              GeoPoint `json:"origin"`
	Destination         GeoPoint `json:"destination"`
	SpeedKnots          float64  `json:"speedKnots,omitempty"`
	IncludeAlternatives bool     `json:"includeAlternatives,omitempty"`
}
