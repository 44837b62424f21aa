package path

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/airway-routing/pkg/graph"
)

func ids(points []graph.NavPoint) []graph.PointId {
	result := make([]graph.PointId, 0, len(points))
	for _, p := range points {
		result = append(result, p.ID)
	}
	return result
}

func TestFringeSearchFixture(t *testing.T) {
	g := fixtureGraph(t)
	points, cost := Search(g, PointEndpoint(A), PointEndpoint(F))
	assert.Equal(t, []graph.PointId{A, K, L, E, F}, ids(points))
	assert.InDelta(t, 20.00, cost, 0.01)
	assert.Equal(t, "A", points[0].Name)
}

func TestFringeSearchSamePoint(t *testing.T) {
	g := fixtureGraph(t)
	points, cost := Search(g, PointEndpoint(D), PointEndpoint(D))
	assert.Equal(t, []graph.PointId{D}, ids(points))
	assert.Equal(t, 0.0, cost)
}

func TestFringeSearchOutcomes(t *testing.T) {
	g := fixtureGraph(t)
	g.AddPoint(graph.MakeNavPoint(13, "M", 0, 0))

	testCases := []struct {
		name        string
		origin      Endpoint
		destination Endpoint
		opts        []Option
		outcome     Outcome
	}{
		{"found", PointEndpoint(A), PointEndpoint(F), nil, OutcomeFound},
		{"unknown origin", PointEndpoint(99), PointEndpoint(F), nil, OutcomeNotFound},
		{"unknown destination", PointEndpoint(A), PointEndpoint(99), nil, OutcomeNotFound},
		{"disconnected", PointEndpoint(A), PointEndpoint(13), nil, OutcomeUnreachable},
		{"iteration cap", PointEndpoint(A), PointEndpoint(F), []Option{WithMaxIterations(1)}, OutcomeUnreachable},
		{"deadline", PointEndpoint(A), PointEndpoint(F), []Option{WithDeadline(time.Now().Add(-time.Second))}, OutcomeUnreachable},
		{"unknown airport", AirportEndpoint("EDDF"), PointEndpoint(F), nil, OutcomeNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFringeSearch(g, tc.opts...)
			points, cost := f.Search(tc.origin, tc.destination)
			assert.Equal(t, tc.outcome, f.KPIs().Outcome)
			if tc.outcome != OutcomeFound {
				assert.Empty(t, points)
				assert.Equal(t, 0.0, cost)
			}
		})
	}
}

func TestFringeSearchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		numPoints := 2 + rng.Intn(7)
		g := randomGraph(rng, numPoints, rng.Intn(numPoints))
		origin, destination := rng.Intn(numPoints), rng.Intn(numPoints)

		points, cost := Search(g, PointEndpoint(origin), PointEndpoint(destination), WithMaxIterations(1_000_000))
		expected, ok := bruteForceDistance(g, origin, destination)
		require.True(t, ok)
		assert.InDelta(t, expected, cost, 1e-9, "round %v: %v -> %v", round, origin, destination)

		path := ids(points)
		require.NotEmpty(t, path)
		assert.Equal(t, origin, path[0])
		assert.Equal(t, destination, path[len(path)-1])
		assert.InDelta(t, cost, requireValidPath(t, g, path), 1e-9)
	}
}

func TestFringeSearchCostOverride(t *testing.T) {
	g := fixtureGraph(t)
	blockKL := func(u, v graph.NavPoint, base float64) float64 {
		if (u.ID == K && v.ID == L) || (u.ID == L && v.ID == K) {
			return base * 100
		}
		return base
	}

	points, cost := Search(g, PointEndpoint(A), PointEndpoint(F), WithCostOverride(blockKL))
	assert.Equal(t, []graph.PointId{A, B, G, J, F}, ids(points))
	assert.InDelta(t, 28.63, cost, 0.01)
}

func TestFringeSearchGeographicHeuristic(t *testing.T) {
	g := geographicGrid(7)
	origin, destination := 3*7, 3*7+6
	expected, _ := ShortestPath(g, origin, destination)
	expectedLength := pathDistance(g, expected)

	plain := NewFringeSearch(g, WithMaxIterations(1_000_000))
	geographic := NewFringeSearch(g, WithHeuristic(GeographicHeuristic(0.99)))

	_, plainCost := plain.Search(PointEndpoint(origin), PointEndpoint(destination))
	_, geographicCost := geographic.Search(PointEndpoint(origin), PointEndpoint(destination))
	assert.InDelta(t, expectedLength, plainCost, 1e-6)
	assert.InDelta(t, expectedLength, geographicCost, 1e-6)
	assert.Less(t, geographic.KPIs().Iterations, plain.KPIs().Iterations)
}

func TestFringeSearchAirports(t *testing.T) {
	g := fixtureGraphWithAirports(t)

	f := NewFringeSearch(g)
	points, cost := f.Search(AirportEndpoint("LEBL"), AirportEndpoint("LFPG"))
	assert.Equal(t, []graph.PointId{A, K, L, E, F}, ids(points))
	assert.InDelta(t, 20.00, cost, 0.01)
	assert.Equal(t, 2*2, f.KPIs().PairsEvaluated)
	assert.Equal(t, OutcomeFound, f.KPIs().Outcome)

	// B -> F via G and J is cheaper than B -> H
	points, cost = f.Search(PointEndpoint(B), AirportEndpoint("LFPG"))
	assert.Equal(t, []graph.PointId{B, G, J, F}, ids(points))
	assert.InDelta(t, 21.01, cost, 0.01)
	assert.Equal(t, 1*2, f.KPIs().PairsEvaluated)

	points, _ = f.Search(AirportEndpoint("LFPG"), PointEndpoint(F))
	assert.Equal(t, []graph.PointId{F}, ids(points))
	assert.Equal(t, 1, f.KPIs().PairsEvaluated)
}

func TestFringeSearchAirportWithoutProcedures(t *testing.T) {
	g := fixtureGraphWithAirports(t)
	f := NewFringeSearch(g)

	for _, tc := range []struct {
		name                string
		origin, destination Endpoint
	}{
		{"no departures", AirportEndpoint("LEGE"), PointEndpoint(F)},
		{"no arrivals", PointEndpoint(A), AirportEndpoint("LEZL")},
		{"dangling departures", AirportEndpoint("LEMD"), PointEndpoint(F)},
		{"dangling arrivals", PointEndpoint(A), AirportEndpoint("LEMD")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			points, cost := f.Search(tc.origin, tc.destination)
			assert.Empty(t, points)
			assert.Equal(t, 0.0, cost)
			assert.Equal(t, OutcomeUnreachable, f.KPIs().Outcome)
			assert.Equal(t, 0, f.KPIs().PairsEvaluated)
		})
	}
}

func TestFringeSearchExpansionDepth(t *testing.T) {
	g := fixtureGraphWithAirports(t)

	f := NewFringeSearch(g, WithExpansionDepth(1))
	points, cost := f.Search(AirportEndpoint("LEBL"), PointEndpoint(F))
	assert.Empty(t, points)
	assert.Equal(t, 0.0, cost)
	assert.Equal(t, OutcomeMisuse, f.KPIs().Outcome)

	// point to point searches never expand
	points, _ = f.Search(PointEndpoint(A), PointEndpoint(F))
	assert.Len(t, points, 5)
}

func TestFringeSearchLogsOutcome(t *testing.T) {
	g := fixtureGraph(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Search(g, PointEndpoint(A), PointEndpoint(99), WithLogger(logger))
	assert.Contains(t, buf.String(), "fringe search")
	assert.Contains(t, buf.String(), `outcome="not found"`)
}

func TestFringeSearchNavigator(t *testing.T) {
	g := fixtureGraph(t)
	f := NewFringeSearch(g)

	assert.InDelta(t, 20.00, f.ComputeShortestPath(A, F), 0.01)
	assert.Equal(t, []graph.PointId{A, K, L, E, F}, f.GetPath(A, F))
	assert.Empty(t, f.GetPath(A, G))
	assert.Equal(t, f.KPIs().Iterations, f.GetPqPops())
	assert.Len(t, f.GetSearchSpace(), f.GetPqPops())
	assert.Equal(t, NoPoint, f.GetSearchSpace()[0].Predecessor())

	assert.Equal(t, -1.0, f.ComputeShortestPath(A, 99))
	assert.Empty(t, f.GetPath(A, 99))
}

func TestParseEndpoint(t *testing.T) {
	g := fixtureGraph(t)
	matcher := graph.DefaultAirportMatcher()

	e, err := ParseEndpoint(g, "LEBL", matcher)
	require.NoError(t, err)
	assert.Equal(t, AirportEndpoint("LEBL"), e)
	assert.True(t, e.IsAirport())

	e, err = ParseEndpoint(g, " 7 ", matcher)
	require.NoError(t, err)
	assert.Equal(t, PointEndpoint(7), e)
	assert.Equal(t, "7", e.String())

	e, err = ParseEndpoint(g, "K", matcher)
	require.NoError(t, err)
	assert.Equal(t, PointEndpoint(K), e)

	_, err = ParseEndpoint(g, "NOWHERE", matcher)
	assert.Error(t, err)
	_, err = ParseEndpoint(g, "", matcher)
	assert.Error(t, err)
}
