// Package geo contains pure geographic computation helpers.
package geo

import (
	"math"

	"cloudpicker/internal/types"
)

const (
	// statute miles per nautical mile
	milesPerNauticalMile = 1.1515
	kmPerMile            = 1.609344
)

// Distance returns the great-circle distance in kilometres between two
// points specified in decimal degrees, using the spherical law of cosines.
// Inputs are not range checked; see Valid.
func Distance(a, b types.Coordinate) float64 {
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0
	}

	rLat1 := degreesToRadians(a.Latitude)
	rLat2 := degreesToRadians(b.Latitude)
	rTheta := degreesToRadians(a.Longitude - b.Longitude)

	cosArg := math.Sin(rLat1)*math.Sin(rLat2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Cos(rTheta)
	// float overshoot near identical or antipodal points
	if cosArg > 1 {
		cosArg = 1
	}
	if cosArg < -1 {
		cosArg = -1
	}

	deg := radiansToDegrees(math.Acos(cosArg))
	miles := deg * 60 * milesPerNauticalMile
	return miles * kmPerMile
}

// Valid reports whether c is a finite coordinate inside the usual
// latitude/longitude ranges.
func Valid(c types.Coordinate) bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
