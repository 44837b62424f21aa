package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	geo "github.com/natevvv/airway-routing/pkg/geometry"
)

type PointId = int

// A navigation fix. Names are not guaranteed to be unique.
type NavPoint struct {
	ID    PointId
	Name  string
	Point geo.Point
}

// A weighted connector between two points. It is stored directed but every
// search traverses it in both directions.
type Segment struct {
	Origin      PointId
	Destination PointId
	Distance    float64
}

func MakeNavPoint(id PointId, name string, lat, lon float64) NavPoint {
	return NavPoint{ID: id, Name: name, Point: geo.MakePoint(lat, lon)}
}

func MakeSegment(origin, destination PointId, distance float64) Segment {
	return Segment{Origin: origin, Destination: destination, Distance: distance}
}

// Invert returns the segment with swapped endpoints
func (s Segment) Invert() Segment {
	return Segment{Origin: s.Destination, Destination: s.Origin, Distance: s.Distance}
}

func (p NavPoint) String() string {
	return fmt.Sprintf("%v (#%v)", p.Name, p.ID)
}

// Graph holds all points, segments and airports of one airspace.
// It is built once per load and must not be modified while searches run on it.
type Graph struct {
	Name      string
	points    map[PointId]NavPoint
	order     []PointId        // ids in order of first insertion
	segments  []Segment        // append only, duplicates allowed
	adjacency map[PointId][]Arc // undirected view of segments
	airports  map[string]*Airport
}

func NewGraph(name string) *Graph {
	return &Graph{
		Name:      name,
		points:    make(map[PointId]NavPoint),
		order:     make([]PointId, 0),
		segments:  make([]Segment, 0),
		adjacency: make(map[PointId][]Arc),
		airports:  make(map[string]*Airport),
	}
}

// Insert the point or replace the point with the same id.
// A replaced point keeps its position in the insertion order.
func (g *Graph) AddPoint(p NavPoint) {
	if _, ok := g.points[p.ID]; !ok {
		g.order = append(g.order, p.ID)
	}
	g.points[p.ID] = p
}

// Append the segment. Endpoints are not validated, a segment to an unknown
// point is a dead end for every search.
func (g *Graph) AddSegment(s Segment) {
	g.segments = append(g.segments, s)
	index := len(g.segments) - 1
	g.adjacency[s.Origin] = append(g.adjacency[s.Origin], MakeArc(s.Destination, s.Distance, index))
	if s.Origin != s.Destination {
		inverse := s.Invert()
		g.adjacency[inverse.Origin] = append(g.adjacency[inverse.Origin], MakeArc(inverse.Destination, inverse.Distance, index))
	}
}

// Insert the airport or replace the airport with the same code
func (g *Graph) AddAirport(a *Airport) {
	g.airports[a.Code] = a
}

// Return the point for the given id
func (g *Graph) Point(id PointId) (NavPoint, bool) {
	p, ok := g.points[id]
	return p, ok
}

func (g *Graph) HasPoint(id PointId) bool {
	_, ok := g.points[id]
	return ok
}

// Return the first inserted point with the given name
func (g *Graph) PointByName(name string) (NavPoint, bool) {
	for _, id := range g.order {
		if p := g.points[id]; p.Name == name {
			return p, true
		}
	}
	return NavPoint{}, false
}

// Return the airport for the given code, nil if it is unknown.
// The returned airport is shared with the graph and must not be modified.
func (g *Graph) Airport(code string) *Airport {
	return g.airports[code]
}

// Return every point connected to id by a segment, regardless of the stored direction.
func (g *Graph) Neighbors(id PointId) []Arc {
	return g.adjacency[id]
}

// Return the weight of the lightest segment between a and b
func (g *Graph) SegmentDistance(a, b PointId) (float64, bool) {
	found := false
	distance := 0.0
	for _, arc := range g.adjacency[a] {
		if arc.To == b && (!found || arc.Distance < distance) {
			distance = arc.Distance
			found = true
		}
	}
	return distance, found
}

// Return all points in insertion order
func (g *Graph) Points() []NavPoint {
	points := make([]NavPoint, 0, len(g.order))
	for _, id := range g.order {
		points = append(points, g.points[id])
	}
	return points
}

// Return all point ids in insertion order
func (g *Graph) PointIds() []PointId {
	return g.order
}

func (g *Graph) Segments() []Segment {
	return g.segments
}

// Return all airports sorted by code
func (g *Graph) Airports() []*Airport {
	airports := make([]*Airport, 0, len(g.airports))
	for _, a := range g.airports {
		airports = append(airports, a)
	}
	sort.Slice(airports, func(i, j int) bool { return airports[i].Code < airports[j].Code })
	return airports
}

func (g *Graph) PointCount() int   { return len(g.points) }
func (g *Graph) SegmentCount() int { return len(g.segments) }
func (g *Graph) AirportCount() int { return len(g.airports) }

// Return the bounding box of all points
func (g *Graph) Bound() orb.Bound {
	coords := make([]geo.Point, 0, len(g.order))
	for _, id := range g.order {
		coords = append(coords, g.points[id].Point)
	}
	return geo.Bound(coords)
}

// Return a human readable string of the graph
func (g *Graph) AsString() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", g.PointCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.SegmentCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.AirportCount()))

	sb.WriteString("#Points\n")
	writeNavPoints(&sb, g)
	sb.WriteString("#Segments\n")
	writeSegments(&sb, g)
	sb.WriteString("#Airports\n")
	writeAirports(&sb, g)
	return sb.String()
}
