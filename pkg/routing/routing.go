package routing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/graph/path"
	"github.com/natevvv/airway-routing/pkg/metrics"
	"github.com/natevvv/airway-routing/pkg/spatial"
)

const (
	NavigatorDijkstra = "dijkstra"
	NavigatorAStar    = "astar"
	NavigatorFringe   = "fringe"
)

var (
	ErrUnknownNavigator = errors.New("unknown navigator")
	ErrNoGraph          = errors.New("no graph loaded")
)

// Per query configuration
type RouteConfig struct {
	MaxPaths            int           // number of alternatives, 0 uses the default
	MaxIterations       int           // pops per point pair of the fringe search, 0 uses the default
	TimeBudget          time.Duration // budget of the alternatives search, 0 uses the default
	GeographicHeuristic bool          // estimate the remaining cost by the great-circle distance
	HeuristicScale      float64       // factor of the geographic heuristic, 0 means 1
}

// Result of a route query
type Route struct {
	Origin      path.Endpoint
	Destination path.Endpoint
	Exists      bool             // whether a route was found
	Waypoints   []graph.NavPoint // points from origin to destination
	Distance    float64          // sum of the segment weights
}

// Router answers route queries on the current graph snapshot.
// The graph can be replaced at any time, each query works on the snapshot it started with.
type Router struct {
	mu          sync.RWMutex
	graph       *graph.Graph
	index       *spatial.PointIndex
	navigator   string
	searchSpace []graph.NavPoint

	matcher *graph.AirportMatcher
	metrics metrics.Collector
	logger  *slog.Logger
}

type Option func(*Router)

func WithAirportMatcher(m *graph.AirportMatcher) Option {
	return func(r *Router) { r.matcher = m }
}

func WithMetrics(c metrics.Collector) Option {
	return func(r *Router) { r.metrics = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// Create a new router on g using the given navigator
func NewRouter(g *graph.Graph, navigator string, opts ...Option) (*Router, error) {
	r := &Router{
		matcher: graph.DefaultAirportMatcher(),
		metrics: metrics.NoopCollector{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.SetNavigator(navigator); err != nil {
		return nil, err
	}
	if g != nil {
		r.SetGraph(g)
	}
	return r, nil
}

// Set the navigation algorithm used for point-to-point queries.
// Airport queries always use the fringe search.
func (r *Router) SetNavigator(navigatorType string) error {
	switch navigatorType {
	case NavigatorDijkstra, NavigatorAStar, NavigatorFringe:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNavigator, navigatorType)
	}
	r.mu.Lock()
	r.navigator = navigatorType
	r.mu.Unlock()
	r.logger.Info("navigator set", "navigator", navigatorType)
	return nil
}

func (r *Router) Navigator() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.navigator
}

// Replace the graph. Running queries finish on the previous graph.
func (r *Router) SetGraph(g *graph.Graph) {
	index := spatial.NewPointIndex(g)

	r.mu.Lock()
	r.graph = g
	r.index = index
	r.searchSpace = nil
	r.mu.Unlock()

	r.metrics.RecordGraph(g.PointCount(), g.SegmentCount(), g.AirportCount())
	r.logger.Info("graph loaded",
		"name", g.Name,
		"points", g.PointCount(),
		"segments", g.SegmentCount(),
		"airports", g.AirportCount())
}

// Return the current graph
func (r *Router) Graph() *graph.Graph {
	g, _, _ := r.snapshot()
	return g
}

func (r *Router) snapshot() (*graph.Graph, *spatial.PointIndex, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.graph, r.index, r.navigator
}

// Parse user input into an endpoint (airport code, point id or point name)
func (r *Router) ParseEndpoint(s string) (path.Endpoint, error) {
	g, _, _ := r.snapshot()
	if g == nil {
		return path.Endpoint{}, ErrNoGraph
	}
	return path.ParseEndpoint(g, s, r.matcher)
}

// Compute the best route between origin and destination
func (r *Router) ComputeRoute(ctx context.Context, origin, destination path.Endpoint, config RouteConfig) Route {
	g, _, navigatorType := r.snapshot()
	route := Route{Origin: origin, Destination: destination}
	if g == nil {
		return route
	}

	start := time.Now()
	var ids []graph.PointId
	var distance float64
	var searchSpace []*path.DijkstraItem

	if origin.IsAirport() || destination.IsAirport() || navigatorType == NavigatorFringe {
		// only the fringe search expands airports
		fringe := path.NewFringeSearch(g, r.searchOptions(ctx, config)...)
		points, cost := fringe.Search(origin, destination)
		ids = make([]graph.PointId, 0, len(points))
		for _, p := range points {
			ids = append(ids, p.ID)
		}
		distance = cost
		searchSpace = fringe.GetSearchSpace()
		navigatorType = NavigatorFringe
	} else {
		dijkstra := path.NewUniversalDijkstra(g)
		dijkstra.SetLogger(r.logger)
		if navigatorType == NavigatorAStar {
			dijkstra.SetUseHeuristic(true)
			if config.HeuristicScale > 0 {
				dijkstra.SetHeuristicScale(config.HeuristicScale)
			}
		}
		if length := dijkstra.ComputeShortestPath(origin.Point, destination.Point); length >= 0 {
			ids = dijkstra.GetPath(origin.Point, destination.Point)
			distance = length
		}
		searchSpace = dijkstra.GetSearchSpace()
	}

	r.storeSearchSpace(g, searchSpace)

	if len(ids) > 0 {
		route.Exists = true
		route.Distance = distance
		route.Waypoints = r.buildWaypoints(g, ids)
	}

	elapsed := time.Since(start)
	r.metrics.RecordSearch("route", navigatorType, elapsed, len(route.Waypoints))
	r.logger.Debug("route computed",
		"origin", origin.String(),
		"destination", destination.String(),
		"navigator", navigatorType,
		"exists", route.Exists,
		"distance", route.Distance,
		"elapsed", elapsed)
	return route
}

// Compute up to config.MaxPaths diverse routes, sorted by distance
func (r *Router) ComputeAlternatives(ctx context.Context, origin, destination path.Endpoint, config RouteConfig) []Route {
	g, _, _ := r.snapshot()
	routes := make([]Route, 0)
	if g == nil {
		return routes
	}

	opts := r.searchOptions(ctx, config)
	if config.MaxPaths > 0 {
		opts = append(opts, path.WithMaxPaths(config.MaxPaths))
	}
	if config.TimeBudget > 0 {
		opts = append(opts, path.WithTimeBudget(config.TimeBudget))
	}

	start := time.Now()
	for _, alternative := range path.AlternativesContext(ctx, g, origin, destination, opts...) {
		routes = append(routes, Route{
			Origin:      origin,
			Destination: destination,
			Exists:      true,
			Waypoints:   r.buildWaypoints(g, alternative.Path),
			Distance:    alternative.Distance,
		})
	}

	elapsed := time.Since(start)
	r.metrics.RecordSearch("alternatives", NavigatorFringe, elapsed, len(routes))
	r.logger.Debug("alternatives computed",
		"origin", origin.String(),
		"destination", destination.String(),
		"paths", len(routes),
		"elapsed", elapsed)
	return routes
}

// Return the point closest to the given location and its distance in km
func (r *Router) FindNearestPoint(lat, lon float64) (graph.NavPoint, float64, bool) {
	_, index, _ := r.snapshot()
	if index == nil {
		return graph.NavPoint{}, 0, false
	}
	return index.Nearest(lat, lon)
}

// Return all points of the graph
func (r *Router) GetPoints() []graph.NavPoint {
	g, _, _ := r.snapshot()
	if g == nil {
		return []graph.NavPoint{}
	}
	return g.Points()
}

// Return the points inside the bounding box
func (r *Router) GetPointsWithin(minLat, minLon, maxLat, maxLon float64) []graph.NavPoint {
	_, index, _ := r.snapshot()
	if index == nil {
		return []graph.NavPoint{}
	}
	return index.Within(minLat, minLon, maxLat, maxLon)
}

// Return the arcs leaving the point. Returns false if the point is unknown.
func (r *Router) GetNeighbors(id graph.PointId) ([]graph.Arc, bool) {
	g, _, _ := r.snapshot()
	if g == nil || !g.HasPoint(id) {
		return nil, false
	}
	return g.Neighbors(id), true
}

func (r *Router) GetPoint(id graph.PointId) (graph.NavPoint, bool) {
	g, _, _ := r.snapshot()
	if g == nil {
		return graph.NavPoint{}, false
	}
	return g.Point(id)
}

// Return the airport with the given code, nil if unknown
func (r *Router) GetAirport(code string) *graph.Airport {
	g, _, _ := r.snapshot()
	if g == nil {
		return nil
	}
	return g.Airport(code)
}

// Get the search space of the last route computation
func (r *Router) GetSearchSpace() []graph.NavPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.searchSpace
}

func (r *Router) searchOptions(ctx context.Context, config RouteConfig) []path.Option {
	opts := []path.Option{
		path.WithAirportMatcher(r.matcher),
		path.WithLogger(r.logger),
	}
	if config.MaxIterations > 0 {
		opts = append(opts, path.WithMaxIterations(config.MaxIterations))
	}
	if config.GeographicHeuristic {
		scale := config.HeuristicScale
		if scale <= 0 {
			scale = 1
		}
		opts = append(opts, path.WithHeuristic(path.GeographicHeuristic(scale)))
	}
	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, path.WithDeadline(deadline))
	}
	return opts
}

func (r *Router) storeSearchSpace(g *graph.Graph, items []*path.DijkstraItem) {
	points := make([]graph.NavPoint, 0, len(items))
	for _, item := range items {
		if p, ok := g.Point(item.PointId()); ok {
			points = append(points, p)
		}
	}
	r.mu.Lock()
	if r.graph == g {
		r.searchSpace = points
	}
	r.mu.Unlock()
}

// Build the waypoints of the path
func (r *Router) buildWaypoints(g *graph.Graph, ids []graph.PointId) []graph.NavPoint {
	waypoints := make([]graph.NavPoint, 0, len(ids))
	for _, id := range ids {
		if p, ok := g.Point(id); ok {
			waypoints = append(waypoints, p)
		}
	}
	return waypoints
}
