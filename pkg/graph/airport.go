package graph

import (
	"fmt"
	"regexp"
	"strings"
)

// Default pattern for airport codes: four letter ICAO location indicators
const DefaultAirportPattern = `^[A-Z]{4}$`

// An Airport exposes the points a route may start from (departures, SID)
// and end at (arrivals, STAR). It is not a node of the graph.
type Airport struct {
	Code       string
	Departures []PointId
	Arrivals   []PointId
}

func NewAirport(code string) *Airport {
	return &Airport{Code: code, Departures: make([]PointId, 0), Arrivals: make([]PointId, 0)}
}

// Add a departure point. Returns false if it is already present.
func (a *Airport) AddDeparture(id PointId) bool {
	for _, d := range a.Departures {
		if d == id {
			return false
		}
	}
	a.Departures = append(a.Departures, id)
	return true
}

// Add an arrival point. Returns false if it is already present.
func (a *Airport) AddArrival(id PointId) bool {
	for _, d := range a.Arrivals {
		if d == id {
			return false
		}
	}
	a.Arrivals = append(a.Arrivals, id)
	return true
}

func (a *Airport) String() string {
	return fmt.Sprintf("%v: %v departures, %v arrivals", a.Code, len(a.Departures), len(a.Arrivals))
}

// AirportMatcher decides whether a piece of text names an airport.
// The conventions depend on the data set, so they are configured rather than fixed.
type AirportMatcher struct {
	prefixes []string
	pattern  *regexp.Regexp
}

// Create a matcher. A text is an airport code if it starts with one of the
// prefixes (when any are given) and matches the pattern (when one is given).
// At least one of both has to be set.
func NewAirportMatcher(prefixes []string, pattern string) (*AirportMatcher, error) {
	m := &AirportMatcher{}
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			m.prefixes = append(m.prefixes, p)
		}
	}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("airport pattern %q: %w", pattern, err)
		}
		m.pattern = re
	}
	if len(m.prefixes) == 0 && m.pattern == nil {
		return nil, fmt.Errorf("airport matcher needs prefixes or a pattern")
	}
	return m, nil
}

// Matcher for four letter ICAO codes
func DefaultAirportMatcher() *AirportMatcher {
	return &AirportMatcher{pattern: regexp.MustCompile(DefaultAirportPattern)}
}

func (m *AirportMatcher) Match(s string) bool {
	if len(m.prefixes) > 0 {
		found := false
		for _, p := range m.prefixes {
			if strings.HasPrefix(s, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return m.pattern == nil || m.pattern.MatchString(s)
}
