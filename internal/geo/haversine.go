// Package geo provides great-circle distance math for the proximity ranker.
package geo

import "math"

const (
	earthRadiusKm = 6371.0
	kmPerMile     = 1.609344
)

// DistanceMiles returns the haversine distance in miles between two
// coordinates, treating the Earth as a sphere of radius 6371 km.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	return DistanceKm(lat1, lng1, lat2, lng2) / kmPerMile
}

// DistanceKm returns the haversine distance in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlng := radians(lng2 - lng1)

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
