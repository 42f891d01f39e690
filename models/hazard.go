package models

import (
	"fmt"
	"time"
)

// DefaultHazardValidity applies when a report does not carry its own expiry.
const DefaultHazardValidity = 24 * time.Hour

type HazardType string

const (
	HazardDebris     HazardType = "debris"
	HazardShallow    HazardType = "shallow"
	HazardWeather    HazardType = "weather"
	HazardCongestion HazardType = "congestion"
	HazardRegulatory HazardType = "regulatory"
	HazardOther      HazardType = "other"
)

func ParseHazardType(s string) (HazardType, error) {
	switch t := HazardType(s); t {
	case HazardDebris, HazardShallow, HazardWeather, HazardCongestion, HazardRegulatory, HazardOther:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown hazard type %q", ErrInvalidRequest, s)
}

// Severity is ordinal; its weight is what a hazard costs a route's safety score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(s string) (Severity, error) {
	switch v := Severity(s); v {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown severity %q", ErrInvalidRequest, s)
}

func (s Severity) Weight() int {
	switch s {
	case SeverityLow:
		return 5
	case SeverityMedium:
		return 10
	case SeverityHigh:
		return 20
	case SeverityCritical:
		return 40
	}
	return 0
}

type Hazard struct {
	ID          string     `json:"id"`
	Type        HazardType `json:"type"`
	Severity    Severity   `json:"severity"`
	Location    GeoPoint   `json:"location"`
	Description string     `json:"description"`
	ReportedBy  string     `json:"reportedBy"`
	VesselID    *string    `json:"vesselId,omitempty"`
	ReportedAt  time.Time  `json:"reportedAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Verified    bool       `json:"verified"`
	Upvotes     uint       `json:"upvotes"`
	Downvotes   uint       `json:"downvotes"`
}

// IsActive reports whether the hazard has not yet expired at now.
func (h Hazard) IsActive(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// HazardHit pairs a hazard with its distance from a point or route.
type HazardHit struct {
	Hazard     Hazard  `json:"hazard"`
	DistanceNm float64 `json:"distanceNm"`
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

func ParseVoteDirection(s string) (VoteDirection, error) {
	switch d := VoteDirection(s); d {
	case VoteUp, VoteDown:
		return d, nil
	}
	return "", fmt.Errorf("%w: vote direction must be up or down, got %q", ErrInvalidRequest, s)
}

// HazardReport is the caller-supplied part of a new hazard.
type HazardReport struct {
	Type        HazardType `json:"type"`
	Severity    Severity   `json:"severity"`
	Location    GeoPoint   `json:"location"`
	Description string     `json:"description"`
	ReportedBy  string     `json:"reportedBy"`
	VesselID    *string    `json:"vesselId,omitempty"`
	ExpiryHours float64    `json:"expiryHours,omitempty"`
}

func (r HazardReport) Validate() error {
	if _, err := ParseHazardType(string(r.Type)); err != nil {
		return err
	}
	if _, err := ParseSeverity(string(r.Severity)); err != nil {
		return err
	}
	if err := r.Location.Validate(); err != nil {
		return err
	}
	if r.ExpiryHours < 0 {
		return fmt.Errorf("%w: expiryHours must be positive", ErrInvalidRequest)
	}
	return nil
}
