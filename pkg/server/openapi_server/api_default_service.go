package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/graph/path"
	"github.com/natevvv/airway-routing/pkg/routing"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	router *routing.Router
	config NavigatorConfig
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router, config NavigatorConfig) DefaultApiServicer {
	return &DefaultApiService{
		router: router,
		config: config,
	}
}

// LoadDefaultApiService loads the nav-data files and creates a default api service on them
func LoadDefaultApiService(ctx context.Context, files graph.NavDataFiles, matcher *graph.AirportMatcher, navigator string, config NavigatorConfig, opts ...routing.Option) (DefaultApiServicer, error) {
	g, err := graph.LoadNavData(ctx, files, matcher)
	if err != nil {
		return nil, fmt.Errorf("load nav-data: %w", err)
	}
	router, err := routing.NewRouter(g, navigator, append([]routing.Option{routing.WithAirportMatcher(matcher)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return NewDefaultApiService(router, config), nil
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	if err := s.checkLimits(routeRequest); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	origin, destination, err := s.parseEndpoints(routeRequest)
	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}

	ctx, cancel := s.withBudget(ctx, routeRequest.TimeBudgetMs)
	defer cancel()

	route := s.router.ComputeRoute(ctx, origin, destination, s.routeConfig(routeRequest))

	routeResult := RouteResult{Origin: routeRequest.Origin, Destination: routeRequest.Destination}
	if route.Exists {
		routeResult.Reachable = true
		routeResult.Path = &Path{Distance: route.Distance, Waypoints: toWaypoints(route.Waypoints)}
	}
	return Response(http.StatusOK, routeResult), nil
}

// ComputeAlternatives - Compute diverse alternative routes
func (s *DefaultApiService) ComputeAlternatives(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	if err := s.checkLimits(routeRequest); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	origin, destination, err := s.parseEndpoints(routeRequest)
	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}

	// the alternatives search has its own budget, the context only guards the request
	ctx, cancel := s.withBudget(ctx, 0)
	defer cancel()

	config := s.routeConfig(routeRequest)
	config.TimeBudget = s.timeBudget(routeRequest.TimeBudgetMs)
	routes := s.router.ComputeAlternatives(ctx, origin, destination, config)

	result := AlternativesResult{Origin: routeRequest.Origin, Destination: routeRequest.Destination, Paths: make([]Path, 0, len(routes))}
	for _, route := range routes {
		result.Paths = append(result.Paths, Path{Distance: route.Distance, Waypoints: toWaypoints(route.Waypoints)})
	}
	return Response(http.StatusOK, result), nil
}

func (s *DefaultApiService) GetPoints(ctx context.Context, bbox *BoundingBox) (ImplResponse, error) {
	var points []graph.NavPoint
	if bbox == nil {
		points = s.router.GetPoints()
	} else {
		points = s.router.GetPointsWithin(bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon)
	}
	return Response(http.StatusOK, Points{Waypoints: toWaypoints(points)}), nil
}

func (s *DefaultApiService) GetNeighbors(ctx context.Context, id int64) (ImplResponse, error) {
	point, ok := s.router.GetPoint(graph.PointId(id))
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("unknown point %v", id)
	}
	arcs, _ := s.router.GetNeighbors(point.ID)

	neighbors := make([]Neighbor, 0, len(arcs))
	for _, arc := range arcs {
		p, ok := s.router.GetPoint(arc.To)
		if !ok {
			// dangling segment
			continue
		}
		neighbors = append(neighbors, Neighbor{Waypoint: toWaypoint(p), Distance: arc.Distance})
	}
	return Response(http.StatusOK, Neighbors{Point: toWaypoint(point), Neighbors: neighbors}), nil
}

func (s *DefaultApiService) GetNearestPoint(ctx context.Context, lat, lon float64) (ImplResponse, error) {
	point, distance, ok := s.router.FindNearestPoint(lat, lon)
	if !ok {
		return Response(http.StatusNotFound, nil), errors.New("no points loaded")
	}
	return Response(http.StatusOK, NearestPoint{Point: toWaypoint(point), Distance: distance}), nil
}

func (s *DefaultApiService) GetAirport(ctx context.Context, code string) (ImplResponse, error) {
	airport := s.router.GetAirport(code)
	if airport == nil {
		return Response(http.StatusNotFound, nil), fmt.Errorf("unknown airport %q", code)
	}

	lookup := func(ids []graph.PointId) []Waypoint {
		waypoints := make([]Waypoint, 0, len(ids))
		for _, id := range ids {
			if p, ok := s.router.GetPoint(id); ok {
				waypoints = append(waypoints, toWaypoint(p))
			}
		}
		return waypoints
	}
	return Response(http.StatusOK, Airport{
		Code:       airport.Code,
		Departures: lookup(airport.Departures),
		Arrivals:   lookup(airport.Arrivals),
	}), nil
}

func (s *DefaultApiService) GetSearchSpace(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, Points{Waypoints: toWaypoints(s.router.GetSearchSpace())}), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	if err := s.router.SetNavigator(navigatorRequest.Navigator); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusOK, navigatorRequest), nil
}

func (s *DefaultApiService) GetHealth(ctx context.Context) (ImplResponse, error) {
	g := s.router.Graph()
	if g == nil {
		return Response(http.StatusServiceUnavailable, nil), routing.ErrNoGraph
	}
	return Response(http.StatusOK, Health{
		Status:    "ok",
		Navigator: s.router.Navigator(),
		Points:    g.PointCount(),
		Segments:  g.SegmentCount(),
		Airports:  g.AirportCount(),
	}), nil
}

func (s *DefaultApiService) parseEndpoints(routeRequest RouteRequest) (path.Endpoint, path.Endpoint, error) {
	origin, err := s.router.ParseEndpoint(routeRequest.Origin)
	if err != nil {
		return path.Endpoint{}, path.Endpoint{}, fmt.Errorf("origin: %w", err)
	}
	destination, err := s.router.ParseEndpoint(routeRequest.Destination)
	if err != nil {
		return path.Endpoint{}, path.Endpoint{}, fmt.Errorf("destination: %w", err)
	}
	return origin, destination, nil
}

// reject requested limits which are negative or exceed the configured bounds
func (s *DefaultApiService) checkLimits(routeRequest RouteRequest) error {
	if routeRequest.MaxPaths < 0 || (s.config.MaxMaxPaths > 0 && int(routeRequest.MaxPaths) > s.config.MaxMaxPaths) {
		return fmt.Errorf("maxPaths %v: must be between 0 and %v", routeRequest.MaxPaths, s.config.MaxMaxPaths)
	}
	if routeRequest.MaxIterations < 0 || (s.config.MaxMaxIterations > 0 && int(routeRequest.MaxIterations) > s.config.MaxMaxIterations) {
		return fmt.Errorf("maxIterations %v: must be between 0 and %v", routeRequest.MaxIterations, s.config.MaxMaxIterations)
	}
	if routeRequest.TimeBudgetMs < 0 {
		return fmt.Errorf("timeBudgetMs %v: must not be negative", routeRequest.TimeBudgetMs)
	}
	return nil
}

func (s *DefaultApiService) routeConfig(routeRequest RouteRequest) routing.RouteConfig {
	config := routing.RouteConfig{
		MaxPaths:            s.config.MaxPaths,
		MaxIterations:       s.config.MaxIterations,
		GeographicHeuristic: routeRequest.GeographicHeuristic,
		HeuristicScale:      s.config.HeuristicScale,
	}
	if routeRequest.MaxPaths > 0 {
		config.MaxPaths = int(routeRequest.MaxPaths)
	}
	if routeRequest.MaxIterations > 0 {
		config.MaxIterations = int(routeRequest.MaxIterations)
	}
	return config
}

// requested budget, capped by the configured maximum
func (s *DefaultApiService) timeBudget(requestedMs int64) time.Duration {
	budget := s.config.TimeBudgetMs
	if requestedMs > 0 {
		budget = requestedMs
	}
	if s.config.MaxTimeBudget > 0 && budget > s.config.MaxTimeBudget {
		budget = s.config.MaxTimeBudget
	}
	return time.Duration(budget) * time.Millisecond
}

func (s *DefaultApiService) withBudget(ctx context.Context, requestedMs int64) (context.Context, context.CancelFunc) {
	if s.config.MaxTimeBudget <= 0 {
		return context.WithCancel(ctx)
	}
	budget := time.Duration(s.config.MaxTimeBudget) * time.Millisecond
	if requestedMs > 0 {
		budget = s.timeBudget(requestedMs)
	}
	return context.WithTimeout(ctx, budget)
}

func toWaypoint(p graph.NavPoint) Waypoint {
	return Waypoint{Id: int64(p.ID), Name: p.Name, Lat: p.Point.Lat(), Lon: p.Point.Lon()}
}

func toWaypoints(points []graph.NavPoint) []Waypoint {
	waypoints := make([]Waypoint, 0, len(points))
	for _, p := range points {
		waypoints = append(waypoints, toWaypoint(p))
	}
	return waypoints
}
