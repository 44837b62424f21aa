// SPDX-License-Identifier: MIT

package openapi_server

type Waypoint struct {
	Id   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// AssertWaypointRequired checks if the required fields are not zero-ed
func AssertWaypointRequired(obj Waypoint) error {
	elements := map[string]interface{}{
		"name": obj.Name,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return nil
}
