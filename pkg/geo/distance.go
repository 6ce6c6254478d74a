package geo

import (
	"github.com/golang/geo/s2"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

const (
	earthRadiusM = 6371.0 * 1000.0
)

// DistanceMeters great-circle distance between two coordinates in meters.
func DistanceMeters(a, b Coordinate) float64 {
	llA := s2.LatLngFromDegrees(a.Lat, a.Lon)
	llB := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return llA.Distance(llB).Radians() * earthRadiusM
}
