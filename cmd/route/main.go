package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/natevvv/airway-routing/internal/logging"
	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/routing"
)

func main() {
	pointsFile := flag.String("points", "", "Points file of the nav-data")
	segmentsFile := flag.String("segments", "", "Segments file of the nav-data")
	airportsFile := flag.String("airports", "", "Airports file of the nav-data (optional)")
	from := flag.String("from", "", "Origin: airport code, point id or point name")
	to := flag.String("to", "", "Destination: airport code, point id or point name")
	navigator := flag.String("navigator", routing.NavigatorFringe, "Navigator for point-to-point queries (dijkstra, astar, fringe)")
	alternatives := flag.Int("alternatives", 0, "Compute up to n diverse alternatives instead of a single route")
	timeBudget := flag.Duration("time-budget", 2*time.Second, "Time budget of the alternatives search")
	maxIterations := flag.Int("max-iterations", 0, "Maximum candidate pops per point pair (0 uses the default)")
	geoHeuristic := flag.Bool("geo-heuristic", false, "Use the great-circle distance as heuristic")
	heuristicScale := flag.Float64("heuristic-scale", 1, "Factor of the great-circle heuristic")
	airportPrefixes := flag.String("airport-prefixes", "", "Comma separated prefixes of airport codes")
	airportPattern := flag.String("airport-pattern", graph.DefaultAirportPattern, "Regular expression of airport codes")
	logFormat := flag.String("log-format", "text", "Log format (text or json)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logFormat, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *pointsFile == "" || *segmentsFile == "" || *from == "" || *to == "" {
		flag.Usage()
		os.Exit(2)
	}

	var prefixes []string
	if *airportPrefixes != "" {
		prefixes = strings.Split(*airportPrefixes, ",")
	}
	matcher, err := graph.NewAirportMatcher(prefixes, *airportPattern)
	if err != nil {
		logger.Error("invalid airport matcher", "error", err)
		os.Exit(2)
	}

	start := time.Now()
	files := graph.NavDataFiles{Points: *pointsFile, Segments: *segmentsFile, Airports: *airportsFile}
	g, err := graph.LoadNavData(context.Background(), files, matcher)
	if err != nil {
		logger.Error("could not load nav-data", "error", err)
		os.Exit(1)
	}
	fmt.Printf("[TIME] Load: %s\n", time.Since(start))
	fmt.Printf("Points: %d, Segments: %d, Airports: %d\n", g.PointCount(), g.SegmentCount(), g.AirportCount())

	router, err := routing.NewRouter(g, *navigator, routing.WithAirportMatcher(matcher), routing.WithLogger(logger))
	if err != nil {
		logger.Error("could not create router", "error", err)
		os.Exit(2)
	}

	origin, err := router.ParseEndpoint(*from)
	if err != nil {
		logger.Error("invalid origin", "error", err)
		os.Exit(2)
	}
	destination, err := router.ParseEndpoint(*to)
	if err != nil {
		logger.Error("invalid destination", "error", err)
		os.Exit(2)
	}

	config := routing.RouteConfig{
		MaxPaths:            *alternatives,
		MaxIterations:       *maxIterations,
		TimeBudget:          *timeBudget,
		GeographicHeuristic: *geoHeuristic,
		HeuristicScale:      *heuristicScale,
	}

	start = time.Now()
	var routes []routing.Route
	if *alternatives > 0 {
		routes = router.ComputeAlternatives(context.Background(), origin, destination, config)
	} else if route := router.ComputeRoute(context.Background(), origin, destination, config); route.Exists {
		routes = append(routes, route)
	}
	fmt.Printf("[TIME] Search: %s\n", time.Since(start))

	if len(routes) == 0 {
		fmt.Printf("No route from %v to %v\n", origin, destination)
		os.Exit(1)
	}
	for i, route := range routes {
		fmt.Printf("Route %d: %v -> %v, distance %.2f, %d points\n", i+1, origin, destination, route.Distance, len(route.Waypoints))
		for _, p := range route.Waypoints {
			fmt.Printf("  %-10v #%-8v %v\n", p.Name, p.ID, p.Point)
		}
	}
}
