package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natevvv/airway-routing/internal/logging"
	"github.com/natevvv/airway-routing/internal/pbf"
	"github.com/natevvv/airway-routing/pkg/graph"
)

var flagOsmFile = flag.String("f", "airways.osm.pbf", "OSM file (.osm.pbf or .osm, optionally .zst/.lz4 compressed)")
var flagOutput = flag.String("o", "airways", "Output prefix of the nav-data files")
var flagCompression = flag.String("compression", "", "Compress the nav-data files (.zst or .lz4)")
var flagAirportPrefixes = flag.String("airport-prefixes", "", "Comma separated prefixes of airport codes")
var flagAirportPattern = flag.String("airport-pattern", graph.DefaultAirportPattern, "Regular expression of airport codes")
var flagNoMerge = flag.Bool("no-merge", false, "Do not merge airway fragments")
var flagLogFormat = flag.String("log-format", "text", "Log format (text or json)")
var flagLogLevel = flag.String("log-level", "info", "Log level")

func main() {
	flag.Parse()

	logger, err := logging.New(os.Stderr, *flagLogFormat, *flagLogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	matcher, err := graph.NewAirportMatcher(splitList(*flagAirportPrefixes), *flagAirportPattern)
	if err != nil {
		logger.Error("invalid airport matcher", "error", err)
		os.Exit(2)
	}

	start := time.Now()

	importer := pbf.NewAirwayImporter(*flagOsmFile, matcher, logger)
	if err := importer.Import(context.Background()); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Printf("[TIME] Import: %s\n", elapsed)

	airways := importer.Airways()
	if !*flagNoMerge {
		start = time.Now()

		merger := pbf.NewMerger(airways)
		merger.Merge()
		airways = merger.Airways()

		elapsed = time.Since(start)
		fmt.Printf("[TIME] Merge: %s\n", elapsed)
		fmt.Printf("Airways: %d\n", len(airways))
		fmt.Printf("Merges: %d\n", merger.MergeCount())
		fmt.Printf("Unmergable airways: %d\n", merger.UnmergableAirwayCount())
	}

	start = time.Now()

	g := importer.Graph(filepath.Base(*flagOutput), airways)
	files, err := pbf.ExportNavData(g, *flagOutput, *flagCompression)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Export: %s\n", elapsed)
	fmt.Printf("Points: %d, Segments: %d, Airports: %d\n", g.PointCount(), g.SegmentCount(), g.AirportCount())
	fmt.Printf("Exported nav-data to %s, %s, %s\n", files.Points, files.Segments, files.Airports)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
