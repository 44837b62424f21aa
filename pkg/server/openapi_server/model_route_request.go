// SPDX-License-Identifier: MIT

package openapi_server

// RouteRequest - origin and destination are airport codes, point ids or point names
type RouteRequest struct {
	Origin              string `json:"origin"`
	Destination         string `json:"destination"`
	MaxPaths            int32  `json:"maxPaths,omitempty"`
	MaxIterations       int32  `json:"maxIterations,omitempty"`
	TimeBudgetMs        int64  `json:"timeBudgetMs,omitempty"`
	GeographicHeuristic bool   `json:"geographicHeuristic,omitempty"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	elements := map[string]interface{}{
		"origin":      obj.Origin,
		"destination": obj.Destination,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return nil
}
