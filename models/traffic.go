package models

import (
	"fmt"
	"time"
)

// DefaultTrafficWindow is how far back traffic aggregation looks.
const DefaultTrafficWindow = 6 * time.Hour

type Density string

const (
	DensityLow      Density = "low"
	DensityMedium   Density = "medium"
	DensityHigh     Density = "high"
	DensityCritical Density = "critical"
)

func ParseDensity(s string) (Density, error) {
	switch d := Density(s); d {
	case DensityLow, DensityMedium, DensityHigh, DensityCritical:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown traffic density %q", ErrInvalidRequest, s)
}

// Ordinal maps low..critical to 1..4.
func (d Density) Ordinal() int {
	switch d {
	case DensityLow:
		return 1
	case DensityMedium:
		return 2
	case DensityHigh:
		return 3
	case DensityCritical:
		return 4
	}
	return 0
}

// AtLeast reports whether d is as dense as other or denser.
func (d Density) AtLeast(other Density) bool {
	return d.Ordinal() >= other.Ordinal()
}

// MaxDensity returns the denser of a and b.
func MaxDensity(a, b Density) Density {
	if b.Ordinal() > a.Ordinal() {
		return b
	}
	return a
}

type TrafficReport struct {
	ID          string    `json:"id"`
	Location    GeoPoint  `json:"location"`
	Density     Density   `json:"density"`
	VesselCount uint      `json:"vesselCount"`
	PortCode    *string   `json:"portCode,omitempty"`
	ReportedAt  time.Time `json:"reportedAt"`
	ReportedBy  string    `json:"reportedBy"`
}

// TrafficReportInput is the caller-supplied part of a new traffic report.
// ReportedAt defaults to the time the report is received.
type TrafficReportInput struct {
	Location    GeoPoint   `json:"location"`
	Density     Density    `json:"density"`
	VesselCount uint       `json:"vesselCount"`
	PortCode    *string    `json:"portCode,omitempty"`
	ReportedAt  *Timestamp `json:"reportedAt,omitempty"`
	ReportedBy  string     `json:"reportedBy"`
}

func (in TrafficReportInput) Validate() error {
	if err := in.Location.Validate(); err != nil {
		return err
	}
	if _, err := ParseDensity(string(in.Density)); err != nil {
		return err
	}
	if in.VesselCount < 1 {
		return fmt.Errorf("%w: vesselCount must be at least 1", ErrInvalidRequest)
	}
	return nil
}
