// Package geo provides the geometric primitives for roof layout planning:
// geographic points with great-circle math, a local planar projection, and
// planar polygon measurement (area, containment, angles).
//
// Geographic coordinates are WGS84 degrees. All planar math is done in feet
// in a local frame produced by a Projection; engine code never mixes the two.
package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusFeet is the spherical-earth radius in feet (6371 km).
const EarthRadiusFeet = 6371000.0 / 0.3048

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

// DistanceFeet returns the great-circle distance between two points in feet.
func DistanceFeet(a, b Point) float64 {
	lla := s2.LatLngFromDegrees(a.Lat, a.Lng)
	llb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return lla.Distance(llb).Radians() * EarthRadiusFeet
}

// Bearing returns the initial great-circle bearing from a to b as compass
// degrees in [0, 360), measured clockwise from north.
func Bearing(a, b Point) float64 {
	la := a.Lat * math.Pi / 180
	lb := b.Lat * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lb)
	x := math.Cos(la)*math.Sin(lb) - math.Sin(la)*math.Cos(lb)*math.Cos(dLng)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Bounds is the geographic extent of a set of points.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// BoundsOf computes the bounding box of the given points.
// An empty input yields the zero Bounds.
func BoundsOf(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{North: pts[0].Lat, South: pts[0].Lat, East: pts[0].Lng, West: pts[0].Lng}
	for _, p := range pts[1:] {
		if p.Lat > b.North {
			b.North = p.Lat
		}
		if p.Lat < b.South {
			b.South = p.Lat
		}
		if p.Lng > b.East {
			b.East = p.Lng
		}
		if p.Lng < b.West {
			b.West = p.Lng
		}
	}
	return b
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{Lat: (b.North + b.South) / 2, Lng: (b.East + b.West) / 2}
}
