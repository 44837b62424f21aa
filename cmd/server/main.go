package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/natevvv/airway-routing/internal/logging"
	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/metrics"
	"github.com/natevvv/airway-routing/pkg/routing"
	openapi "github.com/natevvv/airway-routing/pkg/server/openapi_server"
)

func main() {
	addr := flag.String("addr", ":8081", "Listen address")
	pointsFile := flag.String("points", "", "Points file of the nav-data")
	segmentsFile := flag.String("segments", "", "Segments file of the nav-data")
	airportsFile := flag.String("airports", "", "Airports file of the nav-data (optional)")
	navigator := flag.String("navigator", routing.NavigatorFringe, "Navigator for point-to-point queries (dijkstra, astar, fringe)")
	airportPrefixes := flag.String("airport-prefixes", "", "Comma separated prefixes of airport codes")
	airportPattern := flag.String("airport-pattern", graph.DefaultAirportPattern, "Regular expression of airport codes")
	maxPaths := flag.Int("max-paths", 3, "Default number of alternatives")
	maxMaxPaths := flag.Int("max-max-paths", 10, "Upper bound of a requested number of alternatives")
	maxIterations := flag.Int("max-iterations", 0, "Default pops per point pair of the fringe search (0 uses the default)")
	maxMaxIterations := flag.Int("max-max-iterations", 100000, "Upper bound of requested pops per point pair")
	timeBudget := flag.Int64("time-budget-ms", 2000, "Default budget of the alternatives search in ms")
	maxTimeBudget := flag.Int64("max-time-budget-ms", 10000, "Upper bound of a requested budget in ms")
	heuristicScale := flag.Float64("heuristic-scale", 1, "Factor of the great-circle heuristic")
	rateLimit := flag.Float64("rate", 50, "Allowed requests per second (0 disables the limit)")
	burst := flag.Int("burst", 100, "Allowed request burst")
	logFormat := flag.String("log-format", "text", "Log format (text or json)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logFormat, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *pointsFile == "" || *segmentsFile == "" {
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

	files := graph.NavDataFiles{Points: *pointsFile, Segments: *segmentsFile, Airports: *airportsFile}
	start := time.Now()
	g, err := graph.LoadNavData(context.Background(), files, matcher)
	if err != nil {
		logger.Error("could not load nav-data", "error", err)
		os.Exit(1)
	}
	logger.Info("nav-data loaded", "elapsed", time.Since(start))

	collector := metrics.NewPrometheusCollector()
	router, err := routing.NewRouter(g, *navigator,
		routing.WithAirportMatcher(matcher),
		routing.WithMetrics(collector),
		routing.WithLogger(logger))
	if err != nil {
		logger.Error("could not create router", "error", err)
		os.Exit(2)
	}

	service := openapi.NewDefaultApiService(router, openapi.NavigatorConfig{
		MaxPaths:         *maxPaths,
		MaxMaxPaths:      *maxMaxPaths,
		MaxIterations:    *maxIterations,
		MaxMaxIterations: *maxMaxIterations,
		TimeBudgetMs:     *timeBudget,
		MaxTimeBudget:    *maxTimeBudget,
		HeuristicScale:   *heuristicScale,
	})
	handler := openapi.NewRouter(openapi.NewDefaultApiController(service))
	handler.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)
	handler.Use(openapi.Logger(logger, collector))
	if *rateLimit > 0 {
		handler.Use(openapi.RateLimit(rate.NewLimiter(rate.Limit(*rateLimit), *burst)))
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range signals {
			if sig == syscall.SIGHUP {
				// reload the nav-data, running queries finish on the old graph
				g, err := graph.LoadNavData(context.Background(), files, matcher)
				if err != nil {
					logger.Error("reload failed", "error", err)
					continue
				}
				router.SetGraph(g)
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := server.Shutdown(ctx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
			cancel()
			return
		}
	}()

	logger.Info("listening", "addr", *addr, "navigator", router.Navigator())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
