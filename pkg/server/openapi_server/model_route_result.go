// SPDX-License-Identifier: MIT

package openapi_server

type RouteResult struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Reachable   bool   `json:"reachable"`
	Path        *Path  `json:"path,omitempty"`
}

type AlternativesResult struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Paths       []Path `json:"paths"`
}
