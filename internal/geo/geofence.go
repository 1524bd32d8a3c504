// Package geo decides whether a coordinate lies inside the venue geofence.
// Distances and radii are kilometers throughout.
package geo

import "math"

// EarthRadiusKm is the mean radius of the spherical Earth approximation.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in km between two points given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a slightly above 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// IsWithinRadius reports whether (lat, lon) is at most radiusKm from the center.
func IsWithinRadius(lat, lon, centerLat, centerLon, radiusKm float64) bool {
	return Distance(lat, lon, centerLat, centerLon) <= radiusKm
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
