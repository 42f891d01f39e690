package services

import (
	"fmt"

	"github.com/DEEPML1818/MarineTrack-app-sub000/geo"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// SafeZoneThresholdNm is how far the nearest safe or fishing zone may be
// before a soft warning is raised.
const SafeZoneThresholdNm = 10.0

// Classify returns the first restricted zone containing point, or nil.
func Classify(point models.GeoPoint, zones []models.Zone) *models.Zone {
	for i := range zones {
		z := zones[i]
		if z.Type == models.ZoneRestricted && geo.PointInPolygon(point, z.Polygon) {
			return &z
		}
	}
	return nil
}

// NearestZoneOfType measures to each matching zone's vertex centroid and
// returns the closest one. ok is false when no zone matches.
func NearestZoneOfType(point models.GeoPoint, zones []models.Zone, types ...models.ZoneType) (zone *models.Zone, distanceNm float64, ok bool) {
	want := make(map[models.ZoneType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	for i := range zones {
		if !want[zones[i].Type] {
			continue
		}
		d := geo.DistanceNm(point, geo.Centroid(zones[i].Polygon))
		if !ok || d < distanceNm {
			z := zones[i]
			zone, distanceNm, ok = &z, d, true
		}
	}
	return zone, distanceNm, ok
}

// CheckAdvisory evaluates one position: inside a restricted zone is a hard
// warning, being far from any safe or fishing zone is a soft one.
func CheckAdvisory(point models.GeoPoint, zones []models.Zone) models.Advisory {
	if z := Classify(point, zones); z != nil {
		return models.Advisory{
			Warning: true,
			Message: fmt.Sprintf("Warning: you are inside restricted zone %s - leave the area immediately", z.Name),
			Zone:    z,
		}
	}

	if z, d, ok := NearestZoneOfType(point, zones, models.ZoneSafe, models.ZoneFishing); ok && d > SafeZoneThresholdNm {
		bearing := geo.BearingDeg(point, geo.Centroid(z.Polygon))
		return models.Advisory{
			Warning: true,
			Message: fmt.Sprintf("No safe or fishing zone nearby - nearest is %s, %.1f km away to the %s",
				z.Name, d*geo.NmToKm, geo.Cardinal(bearing)),
			Zone:       z,
			DistanceNm: &d,
		}
	}

	return models.Advisory{Message: "All clear - no zone advisories for this position"}
}
