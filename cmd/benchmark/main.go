package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/natevvv/airway-routing/internal/logging"
	"github.com/natevvv/airway-routing/pkg/graph"
	p "github.com/natevvv/airway-routing/pkg/graph/path"
	"github.com/natevvv/airway-routing/pkg/slice"
)

// lengths are compared with this tolerance, sums of float weights depend on the order of addition
const lengthTolerance = 1e-6

type target struct {
	origin      graph.PointId
	destination graph.PointId
	length      float64
	hops        int
}

func main() {
	pointsFile := flag.String("points", "", "Points file of the nav-data")
	segmentsFile := flag.String("segments", "", "Segments file of the nav-data")
	targetFile := flag.String("targets", "targets.txt", "File with the benchmark targets")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many new targets should get created")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	algorithm := flag.String("search", "default", "Select the search algorithm (dijkstra, astar, fringe, reference)")
	maxIterations := flag.Int("max-iterations", 0, "Maximum candidate pops per point pair of the fringe search")
	alternatives := flag.Int("alternatives", 0, "Also measure the search of n alternatives per target")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	logFormat := flag.String("log-format", "text", "Log format (text or json)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logFormat, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	start := time.Now()

	files := graph.NavDataFiles{Points: *pointsFile, Segments: *segmentsFile}
	g, err := graph.LoadNavData(context.Background(), files, graph.DefaultAirportMatcher())
	if err != nil {
		logger.Error("could not load nav-data", "error", err)
		os.Exit(1)
	}
	referenceDijkstra := p.NewDijkstra(g)
	navigator := getNavigator(*algorithm, g, *maxIterations, logger)
	if navigator == nil {
		logger.Error("navigator not supported", "search", *algorithm)
		os.Exit(2)
	}

	elapsed := time.Since(start)
	fmt.Printf("[TIME-Import] = %s\n", elapsed)

	var targets []target
	if *useRandomTargets {
		targets = createTargets(*amountTargets, referenceDijkstra)
		if *storeTargets {
			if err := writeTargets(targets, *targetFile); err != nil {
				logger.Error("could not store targets", "error", err)
				os.Exit(1)
			}
		}
	} else {
		targets, err = readTargets(*targetFile)
		if err != nil {
			logger.Error("could not read targets", "error", err)
			os.Exit(1)
		}
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	}
	if len(targets) == 0 {
		logger.Error("no targets")
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			logger.Error("could not create cpu profile", "error", err)
			os.Exit(1)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	benchmark(navigator, targets, referenceDijkstra)
	if *alternatives > 0 {
		benchmarkAlternatives(g, targets, *alternatives)
	}
}

func getNavigator(algorithm string, g *graph.Graph, maxIterations int, logger *slog.Logger) p.Navigator {
	if slice.Contains([]string{"default", "dijkstra"}, algorithm) {
		d := p.NewUniversalDijkstra(g)
		d.SetLogger(logger)
		return d
	} else if algorithm == "reference" {
		return p.NewDijkstra(g)
	} else if algorithm == "astar" {
		astar := p.NewUniversalDijkstra(g)
		astar.SetUseHeuristic(true)
		astar.SetLogger(logger)
		return astar
	} else if algorithm == "fringe" {
		return p.NewFringeSearch(g, p.WithMaxIterations(maxIterations), p.WithLogger(logger))
	}
	return nil
}

func readTargets(filename string) ([]target, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %g %d", &t.origin, &t.destination, &t.length, &t.hops); err != nil {
			return nil, fmt.Errorf("%v: %w", filename, err)
		}
		targets = append(targets, t)
	}
	return targets, scanner.Err()
}

func createTargets(n int, referenceNavigator *p.Dijkstra) []target {
	// targets: origin, destination, length, #hops (points from source to target)
	targets := make([]target, n)
	seed := rand.NewSource(time.Now().UnixNano())
	rng := rand.New(seed)
	pointIds := referenceNavigator.GetGraph().PointIds()
	// reference algorithm to compute path
	for i := 0; i < n; i++ {
		origin := pointIds[rng.Intn(len(pointIds))]
		destination := pointIds[rng.Intn(len(pointIds))]
		length := referenceNavigator.ComputeShortestPath(origin, destination)
		hops := len(referenceNavigator.GetPath(origin, destination))
		targets[i] = target{origin, destination, length, hops}
	}
	return targets
}

func writeTargets(targets []target, targetFile string) error {
	var sb strings.Builder
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v %v\n", t.origin, t.destination, t.length, t.hops))
	}

	file, err := os.Create(targetFile)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	writer.WriteString(sb.String())
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Run benchmarks on the provided graph and targets
func benchmark(navigator p.Navigator, targets []target, referenceDijkstra *p.Dijkstra) {
	var runtime time.Duration = 0
	var runtimeWithPathExtraction time.Duration = 0
	completed := 0

	pqPops := 0
	pqUpdates := 0
	edgeRelaxations := 0
	relaxationAttempts := 0

	type invalidLength struct {
		testcase        int
		length          float64
		referenceLength float64
	}
	invalidLengths := make([]invalidLength, 0)
	invalidResults := make([]int, 0)
	invalidHops := make([][3]int, 0)

	showResults := func() {
		if completed == 0 {
			return
		}
		fmt.Printf("Average runtime: %.3fms, %.3fms\n", float64(int(runtime.Nanoseconds())/completed)/1000000, float64(int(runtimeWithPathExtraction.Nanoseconds())/completed)/1000000)
		fmt.Printf("Average pq pops: %d\n", pqPops/completed)
		fmt.Printf("Average pq updates: %d\n", pqUpdates/completed)
		fmt.Printf("Average relaxations attempts: %d\n", relaxationAttempts/completed)
		fmt.Printf("Average edge relaxations: %d\n", edgeRelaxations/completed)

		fmt.Printf("%v/%v invalid Result (source/target).\n", len(invalidResults), completed)
		for i, result := range invalidResults {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid result\n", i, result, targets[result].origin, targets[result].destination)
		}

		fmt.Printf("%v/%v invalid path lengths.\n", len(invalidLengths), completed)
		for i, l := range invalidLengths {
			t := targets[l.testcase]
			fmt.Printf("%v: Case %v (%v -> %v) has invalid length. Has: %v, Reference: %v, Difference: %v\n", i, l.testcase, t.origin, t.destination, l.length, l.referenceLength, l.length-l.referenceLength)
		}

		fmt.Printf("%v/%v invalid hops number.\n", len(invalidHops), completed)
		for i, hops := range invalidHops {
			testcase := hops[0]
			actualHops := hops[1]
			referenceHops := hops[2]
			fmt.Printf("%v: Case %v (%v -> %v) has invalid #hops. Has: %v, reference: %v, difference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, actualHops, referenceHops, actualHops-referenceHops)
		}
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	for i, t := range targets {
		start := time.Now()
		length := navigator.ComputeShortestPath(t.origin, t.destination)
		elapsed := time.Since(start)

		pqPops += navigator.GetPqPops()
		pqUpdates += navigator.GetPqUpdates()
		edgeRelaxations += navigator.GetEdgeRelaxations()
		relaxationAttempts += navigator.GetRelaxationAttempts()

		path := navigator.GetPath(t.origin, t.destination)
		elapsedPath := time.Since(start)

		fmt.Printf("[%3v TIME-Navigate, TIME-Path, PQ Pops, PQ Updates, relaxed Edges, relax attempts] = %12s, %12s, %7d, %7d, %7d, %7d\n", i, elapsed, elapsedPath, navigator.GetPqPops(), navigator.GetPqUpdates(), navigator.GetEdgeRelaxations(), navigator.GetRelaxationAttempts())

		if math.Abs(length-t.length) > lengthTolerance {
			invalidLengths = append(invalidLengths, invalidLength{i, length, t.length})
		}
		if length > -1 && (path[0] != t.origin || path[len(path)-1] != t.destination) {
			invalidResults = append(invalidResults, i)
		}
		if t.hops != len(path) {
			// equally long paths may differ in the number of hops
			invalidHops = append(invalidHops, [3]int{i, len(path), t.hops})
		}

		runtime += elapsed
		runtimeWithPathExtraction += elapsedPath
		completed++
	}
	// normal termination, show results
	showResults()
}

// Measure the alternatives search on the provided targets
func benchmarkAlternatives(g *graph.Graph, targets []target, maxPaths int) {
	var runtime time.Duration
	paths := 0
	for i, t := range targets {
		start := time.Now()
		alternatives := p.Alternatives(g, p.PointEndpoint(t.origin), p.PointEndpoint(t.destination), p.WithMaxPaths(maxPaths))
		elapsed := time.Since(start)

		fmt.Printf("[%3v TIME-Alternatives, Paths] = %12s, %3d\n", i, elapsed, len(alternatives))
		runtime += elapsed
		paths += len(alternatives)
	}
	fmt.Printf("Average alternatives runtime: %.3fms\n", float64(runtime.Nanoseconds()/int64(len(targets)))/1000000)
	fmt.Printf("Average alternatives: %.2f\n", float64(paths)/float64(len(targets)))
}
