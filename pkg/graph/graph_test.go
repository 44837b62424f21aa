package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePoints = `number name lat lon
1 A 20 0
2 B 17.5 10
3 C 20 20
4 D 15 20
5 E 5 5
6 F 5 10
7 G 12.5 15
8 H 2.5 10
9 I 2.5 20
10 J 5 15
11 K 15 5
12 L 10 5`

const fixtureSegments = `1 2 7.62
1 11 5.39
2 3 7.62
2 7 6.4
3 4 5.83
4 7 6.71
5 6 4.12
5 12 5.39
6 8 2.5
6 10 5.39
7 10 9.22
8 9 7.21
9 10 3.0
11 12 5.1
7 9 9.22
4 9 14.04
7 4 2.5
10 9 2.5`

func fixtureGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraphFromStrings("fixture", fixturePoints, fixtureSegments, "", DefaultAirportMatcher())
	require.NoError(t, err)
	return g
}

func TestFixtureCounts(t *testing.T) {
	g := fixtureGraph(t)
	assert.Equal(t, 12, g.PointCount())
	assert.Equal(t, 18, g.SegmentCount())
	assert.Equal(t, 0, g.AirportCount())
	assert.Equal(t, "fixture", g.Name)

	ids := g.PointIds()
	require.Len(t, ids, 12)
	assert.Equal(t, 1, ids[0])
	assert.Equal(t, 12, ids[11])
}

func TestNeighborsIgnoreStoredDirection(t *testing.T) {
	g := fixtureGraph(t)

	// E-F is stored as 5->6
	destinations := make([]PointId, 0)
	for _, arc := range g.Neighbors(6) {
		destinations = append(destinations, arc.Destination())
	}
	assert.ElementsMatch(t, []PointId{5, 8, 10}, destinations)

	distance, ok := g.SegmentDistance(12, 11)
	assert.True(t, ok)
	assert.Equal(t, 5.1, distance)

	_, ok = g.SegmentDistance(1, 6)
	assert.False(t, ok)
}

func TestParallelSegmentsKeepLightest(t *testing.T) {
	g := fixtureGraph(t)
	// D-G is stored twice, once as 4->7 (6.71) and once as 7->4 (2.5)
	distance, ok := g.SegmentDistance(4, 7)
	require.True(t, ok)
	assert.Equal(t, 2.5, distance)
	assert.Len(t, g.Neighbors(4), 4)
}

func TestSelfLoop(t *testing.T) {
	g := NewGraph("loop")
	g.AddPoint(MakeNavPoint(1, "A", 0, 0))
	g.AddSegment(MakeSegment(1, 1, 3))
	assert.Len(t, g.Neighbors(1), 1)
}

func TestAddPointReplaces(t *testing.T) {
	g := NewGraph("replace")
	g.AddPoint(MakeNavPoint(1, "A", 0, 0))
	g.AddPoint(MakeNavPoint(2, "B", 1, 1))
	g.AddPoint(MakeNavPoint(1, "Z", 2, 2))

	assert.Equal(t, 2, g.PointCount())
	assert.Equal(t, []PointId{1, 2}, g.PointIds())
	p, ok := g.Point(1)
	require.True(t, ok)
	assert.Equal(t, "Z", p.Name)
	assert.Equal(t, 2.0, p.Point.Lat())
}

func TestPointByNameFirstInsertedWins(t *testing.T) {
	g := NewGraph("names")
	g.AddPoint(MakeNavPoint(7, "DUP", 0, 0))
	g.AddPoint(MakeNavPoint(3, "DUP", 1, 1))

	p, ok := g.PointByName("DUP")
	require.True(t, ok)
	assert.Equal(t, 7, p.ID)

	_, ok = g.PointByName("NONE")
	assert.False(t, ok)
}

func TestDanglingSegment(t *testing.T) {
	g := NewGraph("dangling")
	g.AddPoint(MakeNavPoint(1, "A", 0, 0))
	g.AddSegment(MakeSegment(1, 99, 1))

	assert.False(t, g.HasPoint(99))
	assert.Len(t, g.Neighbors(1), 1)
	assert.Len(t, g.Neighbors(99), 1)
}

func TestAirportsSorted(t *testing.T) {
	g := NewGraph("airports")
	g.AddAirport(NewAirport("LFPG"))
	g.AddAirport(NewAirport("LEBL"))
	g.AddAirport(NewAirport("LEBL"))

	airports := g.Airports()
	require.Len(t, airports, 2)
	assert.Equal(t, "LEBL", airports[0].Code)
	assert.Equal(t, "LFPG", airports[1].Code)
	assert.Nil(t, g.Airport("EDDF"))
}

func TestBound(t *testing.T) {
	g := fixtureGraph(t)
	b := g.Bound()
	assert.Equal(t, 2.5, b.Min.Lat())
	assert.Equal(t, 20.0, b.Max.Lat())
	assert.Equal(t, 0.0, b.Min.Lon())
	assert.Equal(t, 20.0, b.Max.Lon())
}

func TestAsString(t *testing.T) {
	g := NewGraph("small")
	g.AddPoint(MakeNavPoint(1, "A", 1, 2))
	g.AddPoint(MakeNavPoint(2, "B", 3, 4))
	g.AddSegment(MakeSegment(1, 2, 5.5))

	expected := "2\n1\n0\n#Points\n1 A 1 2\n2 B 3 4\n#Segments\n1 2 5.5\n#Airports\n"
	assert.Equal(t, expected, g.AsString())
}
