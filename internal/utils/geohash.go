package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/pickups/internal/pkg/models"
)

// GeoPoint represents a geographical point with latitude and longitude
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// GeoPointFromPickup returns the location of a pickup
func GeoPointFromPickup(p models.Pickup) GeoPoint {
	return GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude}
}

// GeoPointFromView returns the centre of a map view
func GeoPointFromView(v models.View) GeoPoint {
	return GeoPoint{Latitude: v.Latitude, Longitude: v.Longitude}
}

// EncodeGeohash converts a point to a geohash string of the given precision
func EncodeGeohash(point GeoPoint, precision uint) string {
	return geohash.EncodeWithPrecision(point.Latitude, point.Longitude, precision)
}

// GeohashCenter returns the centre of the cell identified by hash
func GeohashCenter(hash string) GeoPoint {
	lat, lng := geohash.DecodeCenter(hash)
	return GeoPoint{Latitude: lat, Longitude: lng}
}

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(point1, point2 GeoPoint) float64 {
	const earthRadiusKm = 6371.0

	lat1, lat2 := radians(point1.Latitude), radians(point2.Latitude)
	dLat := lat2 - lat1
	dLon := radians(point2.Longitude - point1.Longitude)

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
