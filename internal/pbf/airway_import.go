package pbf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"

	geo "github.com/natevvv/airway-routing/pkg/geometry"
	"github.com/natevvv/airway-routing/pkg/graph"
)

const (
	RoleDeparture = "departure"
	RoleArrival   = "arrival"
)

// AirwayImporter reads navigation points, airways and airports from an OSM file.
// Files ending in .pbf are decoded with osmpbf, everything else is read as OSM XML.
type AirwayImporter struct {
	filename string
	matcher  *graph.AirportMatcher
	logger   *slog.Logger

	nodes    map[int64]geo.Point // coordinates of every node
	points   map[int64]graph.NavPoint
	order    []int64 // point ids in file order
	airways  []*Airway
	airports []*graph.Airport
}

func NewAirwayImporter(filename string, matcher *graph.AirportMatcher, logger *slog.Logger) *AirwayImporter {
	if matcher == nil {
		matcher = graph.DefaultAirportMatcher()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AirwayImporter{
		filename: filename,
		matcher:  matcher,
		logger:   logger,
		nodes:    make(map[int64]geo.Point),
		points:   make(map[int64]graph.NavPoint),
		order:    make([]int64, 0),
		airways:  make([]*Airway, 0),
		airports: make([]*graph.Airport, 0),
	}
}

func (ai *AirwayImporter) Import(ctx context.Context) error {
	file, err := graph.OpenFile(ai.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.Contains(strings.ToLower(ai.filename), ".pbf") {
		err = ai.importPbf(file)
	} else {
		err = ai.importXml(ctx, file)
	}
	if err != nil {
		return fmt.Errorf("import %v: %w", ai.filename, err)
	}

	ai.logger.Info("imported osm data",
		"file", ai.filename,
		"nodes", len(ai.nodes),
		"points", len(ai.points),
		"airways", len(ai.airways),
		"airports", len(ai.airports))
	return nil
}

func (ai *AirwayImporter) importPbf(r io.Reader) error {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if object := fromPbf(v); object != nil {
			ai.handle(object)
		}
	}
}

func (ai *AirwayImporter) importXml(ctx context.Context, r io.Reader) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		ai.handle(scanner.Object())
	}
	return scanner.Err()
}

func (ai *AirwayImporter) handle(object osm.Object) {
	switch v := object.(type) {
	case *osm.Node:
		ai.handleNode(v)
	case *osm.Way:
		ai.handleWay(v)
	case *osm.Relation:
		ai.handleRelation(v)
	}
}

func (ai *AirwayImporter) handleNode(n *osm.Node) {
	id := int64(n.ID)
	ai.nodes[id] = geo.MakePoint(n.Lat, n.Lon)

	name := n.Tags.Find("name")
	if name == "" || !isNavigationPoint(n.Tags) {
		return
	}
	if _, ok := ai.points[id]; !ok {
		ai.order = append(ai.order, id)
	}
	ai.points[id] = graph.MakeNavPoint(graph.PointId(id), name, n.Lat, n.Lon)
}

func (ai *AirwayImporter) handleWay(w *osm.Way) {
	if !w.Tags.HasTag("airway") {
		return
	}

	// nodes which are no navigation points are skipped
	nodeIDs := make([]int64, 0, len(w.Nodes))
	for _, node := range w.Nodes {
		if _, ok := ai.points[int64(node.ID)]; ok {
			nodeIDs = append(nodeIDs, int64(node.ID))
		}
	}
	if len(nodeIDs) < 2 {
		ai.logger.Debug("skipped airway", "id", w.ID, "points", len(nodeIDs))
		return
	}

	distance := -1.0
	if value := w.Tags.Find("distance"); value != "" {
		d, err := strconv.ParseFloat(value, 64)
		if err != nil || d < 0 {
			ai.logger.Warn("invalid airway distance", "id", w.ID, "distance", value)
		} else {
			distance = d
		}
	}

	designator := w.Tags.Find("ref")
	if designator == "" {
		designator = w.Tags.Find("name")
	}
	ai.airways = append(ai.airways, newAirway(int64(w.ID), designator, nodeIDs, distance, w.Tags.Map()))
}

func (ai *AirwayImporter) handleRelation(r *osm.Relation) {
	code := r.Tags.Find("icao")
	if r.Tags.Find("aeroway") != "aerodrome" || code == "" || !ai.matcher.Match(code) {
		return
	}

	airport := graph.NewAirport(code)
	for _, member := range r.Members {
		if member.Type != osm.TypeNode {
			continue
		}
		switch member.Role {
		case RoleDeparture:
			airport.AddDeparture(graph.PointId(member.Ref))
		case RoleArrival:
			airport.AddArrival(graph.PointId(member.Ref))
		}
	}
	ai.airports = append(ai.airports, airport)
}

// Build the graph of the imported data. Legs without a distance are weighted
// with the great-circle distance in km.
func (ai *AirwayImporter) Graph(name string, airways []*Airway) *graph.Graph {
	g := graph.NewGraph(name)
	for _, id := range ai.order {
		g.AddPoint(ai.points[id])
	}
	for _, airway := range airways {
		for i, leg := range airway.Legs {
			from, to := airway.NodeIDs[i], airway.NodeIDs[i+1]
			if math.IsNaN(leg) {
				leg = ai.points[from].Point.DistanceTo(ai.points[to].Point)
			}
			g.AddSegment(graph.MakeSegment(graph.PointId(from), graph.PointId(to), leg))
		}
	}
	for _, airport := range ai.airports {
		g.AddAirport(airport)
	}
	return g
}

func (ai *AirwayImporter) Airways() []*Airway {
	return ai.airways
}

func (ai *AirwayImporter) NodeCount() int {
	return len(ai.nodes)
}

func isNavigationPoint(tags osm.Tags) bool {
	if tags.HasTag("navaid") {
		return true
	}
	switch tags.Find("aeroway") {
	case "navigationaid", "waypoint":
		return true
	}
	return false
}

// convert the osmpbf types to the osm object model
func fromPbf(v interface{}) osm.Object {
	switch v := v.(type) {
	case *osmpbf.Node:
		return &osm.Node{ID: osm.NodeID(v.ID), Lat: v.Lat, Lon: v.Lon, Tags: toTags(v.Tags)}
	case *osmpbf.Way:
		nodes := make(osm.WayNodes, 0, len(v.NodeIDs))
		for _, id := range v.NodeIDs {
			nodes = append(nodes, osm.WayNode{ID: osm.NodeID(id)})
		}
		return &osm.Way{ID: osm.WayID(v.ID), Nodes: nodes, Tags: toTags(v.Tags)}
	case *osmpbf.Relation:
		members := make(osm.Members, 0, len(v.Members))
		for _, m := range v.Members {
			members = append(members, osm.Member{Type: memberType(m.Type), Ref: m.ID, Role: m.Role})
		}
		return &osm.Relation{ID: osm.RelationID(v.ID), Members: members, Tags: toTags(v.Tags)}
	}
	return nil
}

func toTags(tags map[string]string) osm.Tags {
	result := make(osm.Tags, 0, len(tags))
	for k, v := range tags {
		result = append(result, osm.Tag{Key: k, Value: v})
	}
	return result
}

func memberType(t osmpbf.MemberType) osm.Type {
	switch t {
	case osmpbf.NodeType:
		return osm.TypeNode
	case osmpbf.WayType:
		return osm.TypeWay
	}
	return osm.TypeRelation
}
