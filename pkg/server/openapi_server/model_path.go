// SPDX-License-Identifier: MIT

package openapi_server

type Path struct {
	// Sum of the segment weights
	Distance float64 `json:"distance"`

	Waypoints []Waypoint `json:"waypoints"`
}

// AssertPathRequired checks if the required fields are not zero-ed
func AssertPathRequired(obj Path) error {
	elements := map[string]interface{}{
		"waypoints": obj.Waypoints,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}

	for _, el := range obj.Waypoints {
		if err := AssertWaypointRequired(el); err != nil {
			return err
		}
	}
	return nil
}
