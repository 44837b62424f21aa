package path

import (
	"fmt"

	"github.com/natevvv/airway-routing/pkg/graph"
)

// A partial path of the fringe search. Candidates are stored in an arena and
// share their prefix through the parent index.
type candidate struct {
	pointId  graph.PointId
	parent   int // arena index of the previous candidate, -1 for the origin
	realCost float64
	length   int // number of points on the path
}

// implement queue.Priorizable
type CandidateItem struct {
	arenaIndex    int
	estimatedCost float64 // real cost plus heuristic
	index         int
}

func NewCandidateItem(arenaIndex int, estimatedCost float64) *CandidateItem {
	return &CandidateItem{arenaIndex: arenaIndex, estimatedCost: estimatedCost, index: -1}
}

func (c *CandidateItem) Priority() float64 { return c.estimatedCost }
func (c *CandidateItem) Index() int        { return c.index }
func (c *CandidateItem) SetIndex(i int)    { c.index = i }
func (c *CandidateItem) String() string {
	return fmt.Sprintf("%v: %v, %v\n", c.index, c.arenaIndex, c.Priority())
}

type candidateArena []candidate

func (a *candidateArena) add(pointId graph.PointId, parent int, realCost float64) int {
	length := 1
	if parent >= 0 {
		length = (*a)[parent].length + 1
	}
	*a = append(*a, candidate{pointId: pointId, parent: parent, realCost: realCost, length: length})
	return len(*a) - 1
}

// Check whether the path ending in the candidate at index visits pointId
func (a candidateArena) contains(index int, pointId graph.PointId) bool {
	for i := index; i >= 0; i = a[i].parent {
		if a[i].pointId == pointId {
			return true
		}
	}
	return false
}

// Return the point ids of the path ending in the candidate at index, origin first
func (a candidateArena) path(index int) []graph.PointId {
	path := make([]graph.PointId, a[index].length)
	for i, pos := index, len(path)-1; i >= 0; i, pos = a[i].parent, pos-1 {
		path[pos] = a[i].pointId
	}
	return path
}
