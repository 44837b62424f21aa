package path

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/natevvv/airway-routing/pkg/graph"
)

// Points A..L have the ids 1..12
const (
	A graph.PointId = iota + 1
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
)

const fixturePoints = `1 A 20 0
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

func fixtureGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewGraphFromStrings("fixture", fixturePoints, fixtureSegments, "", graph.DefaultAirportMatcher())
	require.NoError(t, err)
	return g
}

// fixture with two airports. LEBL departs from A or B, LFPG arrives at F or H.
// LEGE has no departures, LEZL no arrivals and LEMD only references unknown points.
func fixtureGraphWithAirports(t *testing.T) *graph.Graph {
	t.Helper()
	g := fixtureGraph(t)

	lebl := graph.NewAirport("LEBL")
	lebl.AddDeparture(A)
	lebl.AddDeparture(B)
	lebl.AddArrival(A)
	g.AddAirport(lebl)

	lfpg := graph.NewAirport("LFPG")
	lfpg.AddDeparture(F)
	lfpg.AddArrival(F)
	lfpg.AddArrival(H)
	g.AddAirport(lfpg)

	lege := graph.NewAirport("LEGE")
	lege.AddArrival(C)
	g.AddAirport(lege)

	lezl := graph.NewAirport("LEZL")
	lezl.AddDeparture(C)
	g.AddAirport(lezl)

	lemd := graph.NewAirport("LEMD")
	lemd.AddDeparture(99)
	lemd.AddArrival(98)
	g.AddAirport(lemd)
	return g
}

// random connected graph with parallel segments and cycles
func randomGraph(rng *rand.Rand, numPoints, numExtraSegments int) *graph.Graph {
	g := graph.NewGraph("random")
	for id := 0; id < numPoints; id++ {
		g.AddPoint(graph.MakeNavPoint(id, "P", rng.Float64()*10, rng.Float64()*10))
	}
	for id := 1; id < numPoints; id++ {
		g.AddSegment(graph.MakeSegment(id, rng.Intn(id), 1+float64(rng.Intn(20))))
	}
	for i := 0; i < numExtraSegments; i++ {
		g.AddSegment(graph.MakeSegment(rng.Intn(numPoints), rng.Intn(numPoints), 1+float64(rng.Intn(20))))
	}
	return g
}

// cost of the cheapest simple path, found by enumerating all of them
func bruteForceDistance(g *graph.Graph, origin, destination graph.PointId) (float64, bool) {
	best, found := 0.0, false
	onPath := map[graph.PointId]bool{origin: true}
	var walk func(current graph.PointId, cost float64)
	walk = func(current graph.PointId, cost float64) {
		if current == destination {
			if !found || cost < best {
				best, found = cost, true
			}
			return
		}
		for _, arc := range g.Neighbors(current) {
			if onPath[arc.To] || !g.HasPoint(arc.To) {
				continue
			}
			onPath[arc.To] = true
			walk(arc.To, cost+arc.Distance)
			onPath[arc.To] = false
		}
	}
	walk(origin, 0)
	return best, found
}

// check that consecutive points are connected and return the distance of the path
func requireValidPath(t *testing.T, g *graph.Graph, path []graph.PointId) float64 {
	t.Helper()
	seen := make(map[graph.PointId]bool)
	distance := 0.0
	for i, id := range path {
		require.False(t, seen[id], "point %v visited twice in %v", id, path)
		seen[id] = true
		if i == 0 {
			continue
		}
		d, ok := g.SegmentDistance(path[i-1], id)
		require.True(t, ok, "no segment between %v and %v", path[i-1], id)
		distance += d
	}
	return distance
}
