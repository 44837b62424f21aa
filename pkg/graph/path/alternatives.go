package path

import (
	"context"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/slice"
)

const (
	// A candidate is accepted if at least this fraction of its intermediate points
	// is not part of any accepted route.
	MinDistinctRatio = 0.3

	initialPenalty     = 5.0
	penaltyGrowth      = 1.5
	maxPenalty         = 30.0
	pointPenaltyFactor = 1.5 // entering a penalized point costs penalty*pointPenaltyFactor
	penaltyRotation    = 3   // attempts between two additionally penalized points
)

type Alternative struct {
	Distance float64
	Path     []graph.PointId
}

// Search up to MaxPaths diverse routes between origin and destination, sorted by distance.
// The first route is the optimal one, the others are found by penalizing the
// segments and points of the routes found so far.
func Alternatives(g *graph.Graph, origin, destination Endpoint, opts ...Option) []Alternative {
	return AlternativesContext(context.Background(), g, origin, destination, opts...)
}

// Same as Alternatives, but also stops when ctx is done
func AlternativesContext(ctx context.Context, g *graph.Graph, origin, destination Endpoint, opts ...Option) []Alternative {
	o := newOptions(append(opts, withContext(ctx)))
	deadline := time.Now().Add(o.TimeBudget)
	if o.Deadline.IsZero() || deadline.Before(o.Deadline) {
		o.Deadline = deadline
	}

	result := make([]Alternative, 0)
	if o.MaxPaths <= 0 {
		return result
	}

	var seed []graph.PointId
	var seedDistance float64
	if !origin.IsAirport() && !destination.IsAirport() {
		seed, seedDistance = ShortestPath(g, origin.Point, destination.Point)
	} else {
		fringe := &FringeSearch{g: g, options: o}
		seed, seedDistance = fringe.searchIds(origin, destination)
	}
	if len(seed) == 0 {
		o.Logger.Debug("alternatives", "origin", origin.String(), "destination", destination.String(), "paths", 0)
		return result
	}

	result = append(result, Alternative{Distance: seedDistance, Path: seed})
	used := make(usedSegments)
	used.add(seed)
	accepted := []*roaring64.Bitmap{intermediatePoints(seed)}

	userCost := o.CostOverride
	penalty := initialPenalty
	penalizedPoints := roaring64.New()
	attempt := 0

	for ; attempt < o.MaxAttempts && len(result) < o.MaxPaths; attempt++ {
		if o.expired() {
			break
		}

		if latest := result[len(result)-1].Path; attempt > 0 && attempt%penaltyRotation == 0 && len(latest) > 3 {
			index := (attempt/penaltyRotation)%(len(latest)-2) + 1
			penalizedPoints.Add(uint64(latest[index]))
		}

		currentPenalty := penalty
		searchOptions := o
		searchOptions.ExpansionDepth = 0
		searchOptions.CostOverride = func(u, v graph.NavPoint, base float64) float64 {
			cost := base
			if userCost != nil {
				cost = userCost(u, v, base)
			}
			if used.contains(u.ID, v.ID) {
				return cost * currentPenalty
			}
			if penalizedPoints.Contains(uint64(v.ID)) {
				return cost * currentPenalty * pointPenaltyFactor
			}
			return cost
		}

		fringe := &FringeSearch{g: g, options: searchOptions}
		candidate, _ := fringe.searchIds(origin, destination)
		if len(candidate) == 0 {
			break
		}

		candidatePoints := intermediatePoints(candidate)
		if isDiverse(candidate, candidatePoints, accepted) {
			result = append(result, Alternative{Distance: pathDistance(g, candidate), Path: candidate})
			accepted = append(accepted, candidatePoints)
			used.add(candidate)
			penalty = initialPenalty
			continue
		}

		penalty *= penaltyGrowth
		if penalty > maxPenalty {
			penalty = initialPenalty
			if len(result) < 2 && attempt > o.MaxPaths {
				break
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Distance < result[j].Distance })
	if len(result) > o.MaxPaths {
		result = result[:o.MaxPaths]
	}

	o.Logger.Debug("alternatives",
		"origin", origin.String(),
		"destination", destination.String(),
		"attempts", attempt,
		"paths", len(result))
	return result
}

// Check if the candidate differs enough from every accepted route
func isDiverse(candidate []graph.PointId, candidatePoints *roaring64.Bitmap, accepted []*roaring64.Bitmap) bool {
	if len(candidate) <= 2 {
		return false
	}
	intermediates := float64(len(candidate) - 2)
	for _, points := range accepted {
		common := roaring64.And(candidatePoints, points).GetCardinality()
		if 1-float64(common)/intermediates < MinDistinctRatio {
			return false
		}
	}
	return true
}

func intermediatePoints(path []graph.PointId) *roaring64.Bitmap {
	points := roaring64.New()
	for _, id := range slice.Inner(path) {
		points.Add(uint64(id))
	}
	return points
}

// Distance of the path with the stored segment weights
func pathDistance(g *graph.Graph, path []graph.PointId) float64 {
	distance := 0.0
	for i := 0; i+1 < len(path); i++ {
		d, _ := g.SegmentDistance(path[i], path[i+1])
		distance += d
	}
	return distance
}

// Segments of accepted routes, independent of the traversal direction
type usedSegments map[[2]graph.PointId]bool

func (u usedSegments) add(path []graph.PointId) {
	for i := 0; i+1 < len(path); i++ {
		u[segmentKey(path[i], path[i+1])] = true
	}
}

func (u usedSegments) contains(a, b graph.PointId) bool {
	return u[segmentKey(a, b)]
}

func segmentKey(a, b graph.PointId) [2]graph.PointId {
	if a > b {
		a, b = b, a
	}
	return [2]graph.PointId{a, b}
}
