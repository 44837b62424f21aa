package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"

	geo "github.com/natevvv/airway-routing/pkg/geometry"
	"github.com/natevvv/airway-routing/pkg/graph"
)

// number of planar nearest neighbors which are compared by great-circle distance
const nearestCandidates = 8

// tolerance of the degenerated rectangle of a point
const pointTolerance = 1e-9

// pointEntry wraps a point for R-tree storage
type pointEntry struct {
	point graph.NavPoint
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (p *pointEntry) Bounds() rtreego.Rect {
	return p.bbox
}

// PointIndex answers nearest point and bounding box queries on the points of a graph.
// Coordinates are indexed as (lon, lat).
type PointIndex struct {
	tree *rtreego.Rtree
	size int
}

func NewPointIndex(g *graph.Graph) *PointIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	size := 0
	for _, p := range g.Points() {
		if !p.Point.Valid() {
			continue
		}
		tree.Insert(&pointEntry{point: p, bbox: location(p.Point).ToRect(pointTolerance)})
		size++
	}
	return &PointIndex{tree: tree, size: size}
}

func (idx *PointIndex) Size() int { return idx.size }

// Return the point with the smallest great-circle distance to the given location
// and the distance in km. Returns false if the index is empty.
func (idx *PointIndex) Nearest(lat, lon float64) (graph.NavPoint, float64, bool) {
	if idx.size == 0 {
		return graph.NavPoint{}, 0, false
	}
	target := geo.MakePoint(lat, lon)

	best := graph.NavPoint{}
	bestDistance := math.Inf(1)
	for _, item := range idx.tree.NearestNeighbors(nearestCandidates, location(target)) {
		if item == nil {
			continue
		}
		p := item.(*pointEntry).point
		if d := target.DistanceTo(p.Point); d < bestDistance {
			best, bestDistance = p, d
		}
	}
	return best, bestDistance, !math.IsInf(bestDistance, 1)
}

// Return all points inside the bounding box spanned by the two corners
func (idx *PointIndex) Within(minLat, minLon, maxLat, maxLon float64) []graph.NavPoint {
	bbox, err := rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{math.Max(maxLon-minLon, pointTolerance), math.Max(maxLat-minLat, pointTolerance)},
	)
	if err != nil {
		return []graph.NavPoint{}
	}

	results := idx.tree.SearchIntersect(bbox)
	points := make([]graph.NavPoint, 0, len(results))
	for _, item := range results {
		points = append(points, item.(*pointEntry).point)
	}
	return points
}

func location(p geo.Point) rtreego.Point {
	return rtreego.Point{p.Lon(), p.Lat()}
}
