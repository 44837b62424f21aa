package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Mean earth radius in meters. Nav-data distances are based on it, while orb
// uses the equatorial radius.
const EarthMeanRadius = 6371000.0

// Point is a geographic coordinate. It is stored in orb order (lon, lat) so it
// can be handed to orb functions without conversion.
type Point orb.Point

// Create a new point from latitude and longitude (degrees)
func MakePoint(lat, lon float64) Point {
	return Point{lon, lat}
}

func NewPoint(lat, lon float64) *Point {
	p := MakePoint(lat, lon)
	return &p
}

func (p Point) Lat() float64 { return p[1] }
func (p Point) Lon() float64 { return p[0] }

// Orb returns the point as orb.Point
func (p Point) Orb() orb.Point { return orb.Point(p) }

// Haversine returns the great-circle distance to other in meters on the mean earth radius
func (p Point) Haversine(other Point) float64 {
	return geo.DistanceHaversine(orb.Point(p), orb.Point(other)) * EarthMeanRadius / orb.EarthRadius
}

// IntHaversine returns the great-circle distance to other in whole meters
func (p Point) IntHaversine(other Point) int {
	return int(math.Round(p.Haversine(other)))
}

// DistanceTo returns the great-circle distance to other in kilometers.
// Nav-data segment distances are expressed in kilometers as well.
func (p Point) DistanceTo(other Point) float64 {
	return p.Haversine(other) / 1000
}

// Valid reports whether the coordinate lies within the WGS84 range
func (p Point) Valid() bool {
	return p.Lat() >= -90 && p.Lat() <= 90 && p.Lon() >= -180 && p.Lon() <= 180
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.Lat(), p.Lon())
}

// Bound returns the smallest box containing all given points.
// An empty input returns the zero bound.
func Bound(points []Point) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{}
	}
	b := orb.Point(points[0]).Bound()
	for _, p := range points[1:] {
		b = b.Extend(orb.Point(p))
	}
	return b
}
