package models

import "fmt"

type ZoneType string

const (
	ZoneSafe       ZoneType = "safe"
	ZoneFishing    ZoneType = "fishing"
	ZoneRestricted ZoneType = "restricted"
	ZoneBorder     ZoneType = "border"
)

func ParseZoneType(s string) (ZoneType, error) {
	switch t := ZoneType(s); t {
	case ZoneSafe, ZoneFishing, ZoneRestricted, ZoneBorder:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown zone type %q", ErrInvalidRequest, s)
}

// Zone is a named maritime area. The polygon is implicitly closed: the last
// vertex connects back to the first.
type Zone struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Type        ZoneType   `json:"type" yaml:"type"`
	Polygon     []GeoPoint `json:"polygon" yaml:"polygon"`
	Description string     `json:"description" yaml:"description"`
}

func (z Zone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("%w: zone id is required", ErrInvalidRequest)
	}
	if _, err := ParseZoneType(string(z.Type)); err != nil {
		return fmt.Errorf("zone %s: %w", z.ID, err)
	}
	if len(z.Polygon) < 3 {
		return fmt.Errorf("%w: zone %s needs at least 3 vertices, has %d", ErrInvalidRequest, z.ID, len(z.Polygon))
	}
	for i, v := range z.Polygon {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("zone %s vertex %d: %w", z.ID, i, err)
		}
	}
	return nil
}

// Advisory is the outcome of checking one position against the zones.
type Advisory struct {
	Warning    bool     `json:"warning"`
	Message    string   `json:"message"`
	Zone       *Zone    `json:"zone,omitempty"`
	DistanceNm *float64 `json:"distanceNm,omitempty"`
}
