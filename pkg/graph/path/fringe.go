package path

import (
	"math"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/queue"
)

// Why a search returned the empty result. The result itself is the same in all
// failure cases; the outcome is only diagnostic.
type Outcome int

const (
	OutcomeFound       Outcome = iota
	OutcomeNotFound            // a point id or airport code is unknown
	OutcomeUnreachable         // no path within the bounds, or the airport has no usable procedure points
	OutcomeMisuse              // airport expansion below the first level
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not found"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeMisuse:
		return "misuse"
	}
	return "invalid"
}

type FringeKPIs struct {
	Iterations         int // candidate pops over all evaluated point pairs
	PairsEvaluated     int // point-to-point searches run
	CandidatesPushed   int
	RelaxationAttempts int
	Outcome            Outcome
}

// FringeSearch is a best-first search over partial paths. Endpoints may be
// airports, which are expanded into their departure and arrival points.
// It implements the Navigator interface for point-to-point queries.
type FringeSearch struct {
	g       *graph.Graph
	options Options
	kpis    FringeKPIs

	arena    candidateArena
	settled  []int // arena indices of popped candidates
	lastPath []graph.PointId
}

func NewFringeSearch(g *graph.Graph, opts ...Option) *FringeSearch {
	return &FringeSearch{g: g, options: newOptions(opts)}
}

// Search the cheapest route between origin and destination.
// Returns the points of the route and its cost, or (nil, 0) if there is none.
func Search(g *graph.Graph, origin, destination Endpoint, opts ...Option) ([]graph.NavPoint, float64) {
	return NewFringeSearch(g, opts...).Search(origin, destination)
}

func (f *FringeSearch) Search(origin, destination Endpoint) ([]graph.NavPoint, float64) {
	path, cost := f.searchIds(origin, destination)
	if path == nil {
		return nil, 0
	}
	points := make([]graph.NavPoint, 0, len(path))
	for _, id := range path {
		p, _ := f.g.Point(id)
		points = append(points, p)
	}
	return points, cost
}

func (f *FringeSearch) searchIds(origin, destination Endpoint) ([]graph.PointId, float64) {
	f.kpis = FringeKPIs{}
	f.arena = f.arena[:0]
	f.settled = f.settled[:0]
	f.lastPath = nil

	path, cost, outcome := f.search(origin, destination, f.options.ExpansionDepth)
	f.kpis.Outcome = outcome
	f.options.Logger.Debug("fringe search",
		"origin", origin.String(),
		"destination", destination.String(),
		"pairs", f.kpis.PairsEvaluated,
		"iterations", f.kpis.Iterations,
		"outcome", outcome.String())

	if outcome != OutcomeFound {
		return nil, 0
	}
	f.lastPath = path
	return path, cost
}

func (f *FringeSearch) search(origin, destination Endpoint, depth int) ([]graph.PointId, float64, Outcome) {
	if !origin.IsAirport() && !destination.IsAirport() {
		if !f.g.HasPoint(origin.Point) || !f.g.HasPoint(destination.Point) {
			return nil, 0, OutcomeNotFound
		}
		f.kpis.PairsEvaluated++
		path, cost, ok := f.pointToPoint(origin.Point, destination.Point)
		if !ok {
			return nil, 0, OutcomeUnreachable
		}
		return path, cost, OutcomeFound
	}

	if depth >= 1 {
		return nil, 0, OutcomeMisuse
	}

	origins, outcome := origin.resolve(f.g, true)
	if outcome != OutcomeFound {
		return nil, 0, outcome
	}
	destinations, outcome := destination.resolve(f.g, false)
	if outcome != OutcomeFound {
		return nil, 0, outcome
	}

	var bestPath []graph.PointId
	bestCost := math.Inf(1)
	for _, o := range origins {
		for _, d := range destinations {
			path, cost, outcome := f.search(PointEndpoint(o), PointEndpoint(d), depth+1)
			if outcome == OutcomeFound && cost < bestCost {
				bestPath = path
				bestCost = cost
			}
		}
	}
	if bestPath == nil {
		return nil, 0, OutcomeUnreachable
	}
	return bestPath, bestCost, OutcomeFound
}

func (f *FringeSearch) pointToPoint(origin, destination graph.PointId) ([]graph.PointId, float64, bool) {
	if origin == destination {
		return []graph.PointId{origin}, 0, true
	}

	destinationPoint, _ := f.g.Point(destination)
	originPoint, _ := f.g.Point(origin)
	heuristic := f.options.Heuristic

	minHeap := queue.NewMinHeap[*CandidateItem](nil)
	root := f.arena.add(origin, -1, 0)
	minHeap.Push(NewCandidateItem(root, heuristic(originPoint, destinationPoint)))

	for iterations := 0; minHeap.Len() > 0 && iterations < f.options.MaxIterations; iterations++ {
		if f.options.expired() {
			return nil, 0, false
		}

		item := minHeap.Pop()
		f.kpis.Iterations++
		f.settled = append(f.settled, item.arenaIndex)
		current := f.arena[item.arenaIndex]

		if current.pointId == destination {
			return f.arena.path(item.arenaIndex), current.realCost, true
		}

		currentPoint, _ := f.g.Point(current.pointId)
		for _, arc := range f.g.Neighbors(current.pointId) {
			f.kpis.RelaxationAttempts++
			next, ok := f.g.Point(arc.Destination())
			if !ok {
				// dangling segment
				continue
			}
			if f.arena.contains(item.arenaIndex, next.ID) {
				continue
			}

			cost := arc.Cost()
			if f.options.CostOverride != nil {
				cost = f.options.CostOverride(currentPoint, next, cost)
			}
			realCost := current.realCost + cost
			child := f.arena.add(next.ID, item.arenaIndex, realCost)
			minHeap.Push(NewCandidateItem(child, realCost+heuristic(next, destinationPoint)))
			f.kpis.CandidatesPushed++
		}
	}
	return nil, 0, false
}

func (f *FringeSearch) KPIs() FringeKPIs { return f.kpis }

// Compute the cheapest path between two points. Returns -1 if there is none
func (f *FringeSearch) ComputeShortestPath(origin, destination graph.PointId) float64 {
	path, cost := f.searchIds(PointEndpoint(origin), PointEndpoint(destination))
	if path == nil {
		return -1
	}
	return cost
}

// Get the path of a previous computation
func (f *FringeSearch) GetPath(origin, destination graph.PointId) []graph.PointId {
	if len(f.lastPath) == 0 || f.lastPath[0] != origin || f.lastPath[len(f.lastPath)-1] != destination {
		return make([]graph.PointId, 0)
	}
	return f.lastPath
}

// Returns the popped candidates of the previous computation
func (f *FringeSearch) GetSearchSpace() []*DijkstraItem {
	searchSpace := make([]*DijkstraItem, 0, len(f.settled))
	for _, index := range f.settled {
		c := f.arena[index]
		predecessor := NoPoint
		if c.parent >= 0 {
			predecessor = f.arena[c.parent].pointId
		}
		searchSpace = append(searchSpace, NewDijkstraItem(c.pointId, c.realCost, predecessor, 0))
	}
	return searchSpace
}

func (f *FringeSearch) GetPqPops() int             { return f.kpis.Iterations }
func (f *FringeSearch) GetPqUpdates() int          { return f.kpis.CandidatesPushed }
func (f *FringeSearch) GetEdgeRelaxations() int    { return f.kpis.CandidatesPushed }
func (f *FringeSearch) GetRelaxationAttempts() int { return f.kpis.RelaxationAttempts }
func (f *FringeSearch) GetGraph() *graph.Graph     { return f.g }
