package geo

import "math"

// earthRadiusMeters is the mean radius of the Earth.
const earthRadiusMeters = 6371000.0

// Coordinate is a point in decimal degrees. Callers are expected to pass
// well-formed values (-90..90, -180..180); the package does not validate.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters returns the great-circle (haversine) distance between two
// coordinates in meters. It is symmetric and returns ~0 for equal points.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
