package graph

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Nav-data is stored in three whitespace separated text files:
//
//	points:   id name lat lon
//	segments: origin destination distance
//	airports: an airport code line, followed by departure point names (suffix .D)
//	          and arrival point names (suffix .A)
//
// A leading header line and lines starting with '#' are skipped.

const (
	DepartureSuffix = ".D"
	ArrivalSuffix   = ".A"
)

var ErrMalformedLine = errors.New("malformed nav-data line")

type NavDataFiles struct {
	Points   string
	Segments string
	Airports string // optional
}

// Read all points of a points file
func ReadNavPoints(r io.Reader) ([]NavPoint, error) {
	points := make([]NavPoint, 0)
	err := scanLines(r, func(lineNumber int, fields []string) error {
		if len(fields) < 4 {
			return fmt.Errorf("%w %v: expected 4 fields, got %v", ErrMalformedLine, lineNumber, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("%w %v: id: %v", ErrMalformedLine, lineNumber, err)
		}
		lat, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("%w %v: latitude: %v", ErrMalformedLine, lineNumber, err)
		}
		lon, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("%w %v: longitude: %v", ErrMalformedLine, lineNumber, err)
		}
		points = append(points, MakeNavPoint(id, fields[1], lat, lon))
		return nil
	})
	return points, err
}

// Read all segments of a segments file
func ReadSegments(r io.Reader) ([]Segment, error) {
	segments := make([]Segment, 0)
	err := scanLines(r, func(lineNumber int, fields []string) error {
		if len(fields) < 3 {
			return fmt.Errorf("%w %v: expected 3 fields, got %v", ErrMalformedLine, lineNumber, len(fields))
		}
		origin, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("%w %v: origin: %v", ErrMalformedLine, lineNumber, err)
		}
		destination, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w %v: destination: %v", ErrMalformedLine, lineNumber, err)
		}
		distance, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("%w %v: distance: %v", ErrMalformedLine, lineNumber, err)
		}
		if distance < 0 {
			return fmt.Errorf("%w %v: negative distance %v", ErrMalformedLine, lineNumber, distance)
		}
		segments = append(segments, MakeSegment(origin, destination, distance))
		return nil
	})
	return segments, err
}

// Read the airports file. Procedure names are resolved against the points of g
// (first inserted point wins); names that cannot be resolved are skipped.
// Lines before the first airport code are ignored.
func ReadAirports(r io.Reader, g *Graph, matcher *AirportMatcher) ([]*Airport, error) {
	airports := make([]*Airport, 0)
	var current *Airport

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		if !strings.Contains(line, ".") && matcher.Match(line) {
			current = NewAirport(line)
			airports = append(airports, current)
			continue
		}
		if current == nil {
			continue
		}

		p, ok := g.PointByName(line)
		if !ok {
			continue
		}
		switch {
		case strings.HasSuffix(line, DepartureSuffix):
			current.AddDeparture(p.ID)
		case strings.HasSuffix(line, ArrivalSuffix):
			current.AddArrival(p.ID)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return airports, nil
}

// Load a graph from nav-data files. Points and segments are parsed concurrently,
// airports afterwards since they reference points by name.
func LoadNavData(ctx context.Context, files NavDataFiles, matcher *AirportMatcher) (*Graph, error) {
	var points []NavPoint
	var segments []Segment

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		points, err = readFile(egCtx, files.Points, ReadNavPoints)
		return err
	})
	eg.Go(func() error {
		var err error
		segments, err = readFile(egCtx, files.Segments, ReadSegments)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g := NewGraph(graphName(files.Points))
	for _, p := range points {
		g.AddPoint(p)
	}
	for _, s := range segments {
		g.AddSegment(s)
	}

	if files.Airports != "" {
		airports, err := readFile(ctx, files.Airports, func(r io.Reader) ([]*Airport, error) {
			return ReadAirports(r, g, matcher)
		})
		if err != nil {
			return nil, err
		}
		for _, a := range airports {
			g.AddAirport(a)
		}
	}
	return g, nil
}

// Build a graph from in-memory nav-data. airports may be empty.
func NewGraphFromStrings(name, points, segments, airports string, matcher *AirportMatcher) (*Graph, error) {
	navPoints, err := ReadNavPoints(strings.NewReader(points))
	if err != nil {
		return nil, err
	}
	navSegments, err := ReadSegments(strings.NewReader(segments))
	if err != nil {
		return nil, err
	}

	g := NewGraph(name)
	for _, p := range navPoints {
		g.AddPoint(p)
	}
	for _, s := range navSegments {
		g.AddSegment(s)
	}
	if airports == "" {
		return g, nil
	}
	navAirports, err := ReadAirports(strings.NewReader(airports), g, matcher)
	if err != nil {
		return nil, err
	}
	for _, a := range navAirports {
		g.AddAirport(a)
	}
	return g, nil
}

// Write the graph to the given nav-data files
func WriteNavData(g *Graph, files NavDataFiles) error {
	write := func(filename string, writeFn func(*bufio.Writer, *Graph)) error {
		file, err := CreateFile(filename)
		if err != nil {
			return err
		}

		writer := bufio.NewWriter(file)
		writeFn(writer, g)
		if err := writer.Flush(); err != nil {
			file.Close()
			return fmt.Errorf("write %v: %w", filename, err)
		}
		return file.Close()
	}

	if err := write(files.Points, func(w *bufio.Writer, g *Graph) { writeNavPoints(w, g) }); err != nil {
		return err
	}
	if err := write(files.Segments, func(w *bufio.Writer, g *Graph) { writeSegments(w, g) }); err != nil {
		return err
	}
	if files.Airports != "" {
		return write(files.Airports, func(w *bufio.Writer, g *Graph) { writeAirports(w, g) })
	}
	return nil
}

// structured as "id name lat lon"
func writeNavPoints(w io.StringWriter, g *Graph) {
	for _, p := range g.Points() {
		w.WriteString(fmt.Sprintf("%v %v %v %v\n", p.ID, fieldName(p.Name), p.Point.Lat(), p.Point.Lon()))
	}
}

// structured as "origin destination distance"
func writeSegments(w io.StringWriter, g *Graph) {
	for _, s := range g.Segments() {
		w.WriteString(fmt.Sprintf("%v %v %v\n", s.Origin, s.Destination, s.Distance))
	}
}

// airport code followed by the names of its departure and arrival points
func writeAirports(w io.StringWriter, g *Graph) {
	for _, a := range g.Airports() {
		w.WriteString(a.Code + "\n")
		for _, ids := range [][]PointId{a.Departures, a.Arrivals} {
			for _, id := range ids {
				if p, ok := g.Point(id); ok {
					w.WriteString(fieldName(p.Name) + "\n")
				}
			}
		}
	}
}

// helper to scan whitespace separated records.
// The first record may be a header: if it does not parse, it is skipped.
func scanLines(r io.Reader, parse func(lineNumber int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	firstRecord := true
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		err := parse(lineNumber, strings.Fields(line))
		if err != nil && firstRecord {
			// header line
			firstRecord = false
			continue
		}
		if err != nil {
			return err
		}
		firstRecord = false
	}
	return scanner.Err()
}

// Open and parse the file. Reading stops with ctx.Err() once ctx is done.
func readFile[T any](ctx context.Context, filename string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	file, err := OpenFile(filename)
	if err != nil {
		return zero, err
	}
	defer file.Close()

	result, err := read(&contextReader{ctx: ctx, r: file})
	if err != nil {
		return zero, fmt.Errorf("%v: %w", filename, err)
	}
	return result, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// names are single fields in the text format
func fieldName(name string) string {
	if name == "" {
		return "_"
	}
	return strings.Join(strings.Fields(name), "_")
}

// derive the airspace name from the points file, e.g. "Cat_nav.txt" -> "Cat"
func graphName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexAny(base, "_."); i > 0 {
		return base[:i]
	}
	return base
}
