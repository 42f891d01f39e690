// Package geo holds the stateless spherical-earth helpers the route engine is
// built on. Distances are nautical miles, angles are degrees.
package geo

import (
	"math"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// EarthRadiusNm is the mean earth radius (6371 km) expressed in nautical miles.
const EarthRadiusNm = 3440.065

// NmToKm converts nautical miles to kilometres.
const NmToKm = 1.852

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// DistanceNm is the haversine great-circle distance between a and b.
func DistanceNm(a, b models.GeoPoint) float64 {
	if a == b {
		return 0
	}
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	la1 := toRad(a.Lat)
	la2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusNm * c
}

// BearingDeg is the initial forward azimuth from a to b in [0,360).
// It is 0 when the points coincide.
func BearingDeg(a, b models.GeoPoint) float64 {
	if a == b {
		return 0
	}
	la1 := toRad(a.Lat)
	la2 := toRad(b.Lat)
	dLng := toRad(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLng)
	return NormalizeBearing(toDeg(math.Atan2(y, x)))
}

// NormalizeBearing folds any angle into [0,360).
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Cardinal returns the nearest of the eight compass points.
func Cardinal(bearingDeg float64) string {
	idx := int(math.Round(NormalizeBearing(bearingDeg)/45)) % 8
	return compassPoints[idx]
}

// PointInPolygon ray-casts p against polygon, including the implicit edge from
// the last vertex back to the first. Points on the boundary may go either way.
func PointInPolygon(p models.GeoPoint, polygon []models.GeoPoint) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := polygon[i], polygon[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
	}
	return inside
}

// Centroid is the arithmetic mean of the polygon's vertices.
func Centroid(polygon []models.GeoPoint) models.GeoPoint {
	if len(polygon) == 0 {
		return models.GeoPoint{}
	}
	var lat, lng float64
	for _, v := range polygon {
		lat += v.Lat
		lng += v.Lng
	}
	n := float64(len(polygon))
	return models.GeoPoint{Lat: lat / n, Lng: lng / n}
}

// Destination travels distanceNm from p along the given initial bearing.
func Destination(p models.GeoPoint, bearingDeg, distanceNm float64) models.GeoPoint {
	delta := distanceNm / EarthRadiusNm
	theta := toRad(bearingDeg)
	la1 := toRad(p.Lat)
	ln1 := toRad(p.Lng)

	la2 := math.Asin(math.Sin(la1)*math.Cos(delta) + math.Cos(la1)*math.Sin(delta)*math.Cos(theta))
	ln2 := ln1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(la1), math.Cos(delta)-math.Sin(la1)*math.Sin(la2))

	lng := math.Mod(toDeg(ln2)+540, 360) - 180
	return models.GeoPoint{Lat: toDeg(la2), Lng: lng}
}
