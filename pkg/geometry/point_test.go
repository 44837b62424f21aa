package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointAccessors(t *testing.T) {
	p := MakePoint(41.3, 2.1)
	assert.Equal(t, 41.3, p.Lat())
	assert.Equal(t, 2.1, p.Lon())
	assert.Equal(t, 2.1, p.Orb().Lon())
	assert.True(t, p.Valid())
	assert.False(t, MakePoint(91, 0).Valid())
}

func TestHaversine(t *testing.T) {
	// one degree of latitude is roughly 111.2 km
	a := MakePoint(0, 0)
	b := MakePoint(1, 0)
	assert.InDelta(t, 111.19, a.DistanceTo(b), 0.1)
	assert.InDelta(t, 111195, float64(a.IntHaversine(b)), 100)
	assert.Equal(t, 0.0, a.DistanceTo(a))
}

func TestHaversineUsesMeanRadius(t *testing.T) {
	// a quarter meridian is pi/2 * R
	a := MakePoint(0, 0)
	b := MakePoint(90, 0)
	assert.InDelta(t, math.Pi/2*EarthMeanRadius, a.Haversine(b), 1e-3)
	assert.InDelta(t, 10007.543, a.DistanceTo(b), 1e-3)
}

func TestBound(t *testing.T) {
	b := Bound([]Point{MakePoint(10, 20), MakePoint(-5, 30), MakePoint(2, 25)})
	assert.Equal(t, -5.0, b.Min.Lat())
	assert.Equal(t, 10.0, b.Max.Lat())
	assert.Equal(t, 20.0, b.Min.Lon())
	assert.Equal(t, 30.0, b.Max.Lon())

	assert.True(t, Bound(nil).IsZero())
}
