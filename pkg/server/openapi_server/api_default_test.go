package openapi_server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/metrics"
	"github.com/natevvv/airway-routing/pkg/routing"
)

const testPoints = `id name lat lon
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
12 L 10 5
13 A.D 20 0
14 F.A 5 10`

const testSegments = `1 2 7.62
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
10 9 2.5
13 1 0
14 6 0
6 99 1`

const testAirports = `LEBL
A.D
LFPG
F.A`

func testHandler(t *testing.T) (*mux.Router, *metrics.PrometheusCollector) {
	t.Helper()
	g, err := graph.NewGraphFromStrings("test", testPoints, testSegments, testAirports, graph.DefaultAirportMatcher())
	require.NoError(t, err)

	collector := metrics.NewPrometheusCollector()
	router, err := routing.NewRouter(g, routing.NavigatorDijkstra, routing.WithMetrics(collector))
	require.NoError(t, err)

	service := NewDefaultApiService(router, NavigatorConfig{MaxPaths: 3, MaxMaxPaths: 10, MaxMaxIterations: 100000, TimeBudgetMs: 1000, MaxTimeBudget: 5000})
	handler := NewRouter(NewDefaultApiController(service))
	handler.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)
	handler.Use(Logger(slog.New(slog.DiscardHandler), collector))
	return handler, collector
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, bytes.NewReader([]byte(body))))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func names(waypoints []Waypoint) []string {
	result := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		result = append(result, w.Name)
	}
	return result
}

func TestComputeRouteEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodPost, "/routes", `{"origin": "A", "destination": "6"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	result := decode[RouteResult](t, rec)
	assert.True(t, result.Reachable)
	require.NotNil(t, result.Path)
	assert.Equal(t, []string{"A", "K", "L", "E", "F"}, names(result.Path.Waypoints))
	assert.InDelta(t, 20.0, result.Path.Distance, 1e-9)
}

func TestComputeRouteBetweenAirportsEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodPost, "/routes", `{"origin": "LEBL", "destination": "LFPG"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[RouteResult](t, rec)
	require.True(t, result.Reachable)
	assert.Equal(t, []string{"A.D", "A", "K", "L", "E", "F", "F.A"}, names(result.Path.Waypoints))
	assert.InDelta(t, 20.0, result.Path.Distance, 1e-9)
}

func TestComputeRouteUnreachable(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodPost, "/routes", `{"origin": "A", "destination": "99"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[RouteResult](t, rec)
	assert.False(t, result.Reachable)
	assert.Nil(t, result.Path)
}

func TestComputeRouteBadRequests(t *testing.T) {
	handler, _ := testHandler(t)

	testCases := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"origin": `, http.StatusBadRequest},
		{"unknown field", `{"origin": "A", "destination": "F", "speed": 3}`, http.StatusBadRequest},
		{"missing destination", `{"origin": "A"}`, http.StatusUnprocessableEntity},
		{"unknown endpoint", `{"origin": "A", "destination": "nowhere"}`, http.StatusBadRequest},
		{"negative max paths", `{"origin": "A", "destination": "F", "maxPaths": -1}`, http.StatusBadRequest},
		{"too many iterations", `{"origin": "A", "destination": "F", "maxIterations": 100001}`, http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, handler, http.MethodPost, "/routes", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, decode[ErrorResult](t, rec).Message)
		})
	}
}

func TestComputeAlternativesEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodPost, "/routes/alternatives", `{"origin": "A", "destination": "F", "maxPaths": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[AlternativesResult](t, rec)
	require.Len(t, result.Paths, 2)
	assert.Equal(t, []string{"A", "K", "L", "E", "F"}, names(result.Paths[0].Waypoints))
	assert.Equal(t, []string{"A", "B", "G", "J", "F"}, names(result.Paths[1].Waypoints))
	assert.InDelta(t, 28.63, result.Paths[1].Distance, 1e-9)
}

func TestComputeAlternativesLimits(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodPost, "/routes/alternatives", `{"origin": "A", "destination": "F", "maxPaths": 2147483647}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResult](t, rec).Message, "maxPaths")

	rec = do(t, handler, http.MethodPost, "/routes/alternatives", `{"origin": "A", "destination": "F", "maxPaths": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	paths := decode[AlternativesResult](t, rec).Paths
	assert.NotEmpty(t, paths)
	assert.LessOrEqual(t, len(paths), 10)
}

func TestGetPointsEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodGet, "/points", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[Points](t, rec).Waypoints, 14)

	rec = do(t, handler, http.MethodGet, "/points?minLat=14&minLon=4&maxLat=16&maxLon=6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"K"}, names(decode[Points](t, rec).Waypoints))

	rec = do(t, handler, http.MethodGet, "/points?minLat=14&minLon=4", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetNeighborsEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodGet, "/points/6/neighbors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[Neighbors](t, rec)
	assert.Equal(t, "F", result.Point.Name)
	// the segment to 99 is dangling
	neighbors := make([]Waypoint, 0, len(result.Neighbors))
	for _, n := range result.Neighbors {
		neighbors = append(neighbors, n.Waypoint)
	}
	assert.ElementsMatch(t, []string{"E", "H", "J", "F.A"}, names(neighbors))

	assert.Equal(t, http.StatusNotFound, do(t, handler, http.MethodGet, "/points/42/neighbors", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodGet, "/points/abc/neighbors", "").Code)
}

func TestGetNearestPointEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodGet, "/points/nearest?lat=10.1&lon=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[NearestPoint](t, rec)
	assert.Equal(t, "L", result.Point.Name)
	assert.InDelta(t, 11.1, result.Distance, 0.1)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, handler, http.MethodGet, "/points/nearest?lat=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodGet, "/points/nearest?lat=1&lon=x", "").Code)
}

func TestGetAirportEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodGet, "/airports/LEBL", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[Airport](t, rec)
	assert.Equal(t, "LEBL", result.Code)
	assert.Equal(t, []string{"A.D"}, names(result.Departures))
	assert.Empty(t, result.Arrivals)

	assert.Equal(t, http.StatusNotFound, do(t, handler, http.MethodGet, "/airports/EDDF", "").Code)
}

func TestSetNavigatorEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodPost, "/navigator", `{"navigator": "fringe"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[Health](t, rec)
	assert.Equal(t, "fringe", health.Navigator)
	assert.Equal(t, 14, health.Points)
	assert.Equal(t, 2, health.Airports)

	assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/navigator", `{"navigator": "contraction-hierarchies"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, handler, http.MethodPost, "/navigator", `{"navigator": ""}`).Code)
}

func TestSearchSpaceEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	rec := do(t, handler, http.MethodGet, "/searchSpace", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[Points](t, rec).Waypoints)

	do(t, handler, http.MethodPost, "/routes", `{"origin": "A", "destination": "F"}`)
	rec = do(t, handler, http.MethodGet, "/searchSpace", "")
	assert.NotEmpty(t, decode[Points](t, rec).Waypoints)
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	do(t, handler, http.MethodPost, "/routes", `{"origin": "A", "destination": "F"}`)
	rec := do(t, handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `airway_http_requests_total{code="200",route="/routes"} 1`), body)
	assert.True(t, strings.Contains(body, `airway_searches_total{kind="route",navigator="dijkstra",status="found"} 1`), body)
}

func TestRateLimit(t *testing.T) {
	handler, _ := testHandler(t)
	handler.Use(RateLimit(rate.NewLimiter(rate.Every(time.Hour), 2)))

	assert.Equal(t, http.StatusOK, do(t, handler, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, handler, http.MethodGet, "/health", "").Code)
	rec := do(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", decode[ErrorResult](t, rec).Message)
}

func TestRequestIDIsKept(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
