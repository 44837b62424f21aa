package pbf

// Merger joins airway fragments with the same designator which share an end point
type Merger struct {
	airways         []*Airway
	mergeCount      int
	unmergableCount int
}

func NewMerger(airways []*Airway) *Merger {
	return &Merger{
		airways: airways,
	}
}

func (m *Merger) Merge() {
	// index the fragments by their first point
	startToAirways := make(map[int64][]*Airway)
	for _, airway := range m.airways {
		if len(airway.NodeIDs) < 2 || airway.Designator == "" {
			m.unmergableCount++
			continue
		}
		start := airway.NodeIDs[0]
		startToAirways[start] = append(startToAirways[start], airway)
	}

	merged := make(map[int64]bool)
	var newAirways []*Airway

	for _, airway := range m.airways {
		if merged[airway.ID] {
			continue
		}
		merged[airway.ID] = true

		current := airway
		for len(current.NodeIDs) >= 2 && current.Designator != "" {
			end := current.NodeIDs[len(current.NodeIDs)-1]

			foundNext := false
			for _, next := range startToAirways[end] {
				if merged[next.ID] || !canMerge(current, next) {
					continue
				}
				current = mergeTwoAirways(current, next)
				merged[next.ID] = true
				m.mergeCount++
				foundNext = true
				break
			}

			if !foundNext {
				break
			}
		}

		newAirways = append(newAirways, current)
	}

	m.airways = newAirways
}

func canMerge(a1, a2 *Airway) bool {
	return a1.Designator == a2.Designator && a1.NodeIDs[len(a1.NodeIDs)-1] == a2.NodeIDs[0]
}

// The shared point is kept once. The merged airway keeps the id and tags of the first fragment.
func mergeTwoAirways(a1, a2 *Airway) *Airway {
	nodeIDs := make([]int64, 0, len(a1.NodeIDs)+len(a2.NodeIDs)-1)
	nodeIDs = append(nodeIDs, a1.NodeIDs...)
	nodeIDs = append(nodeIDs, a2.NodeIDs[1:]...)

	legs := make([]float64, 0, len(a1.Legs)+len(a2.Legs))
	legs = append(legs, a1.Legs...)
	legs = append(legs, a2.Legs...)

	return &Airway{
		ID:         a1.ID,
		Designator: a1.Designator,
		NodeIDs:    nodeIDs,
		Legs:       legs,
		Tags:       a1.Tags,
	}
}

func (m *Merger) Airways() []*Airway {
	return m.airways
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableAirwayCount() int {
	return m.unmergableCount
}
