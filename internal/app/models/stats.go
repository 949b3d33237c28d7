package models

import "math"

// ResourceStats is the aggregated popularity snapshot of a resource
type ResourceStats struct {
	Rating    float64 `json:"rating"`
	Reviews   int64   `json:"reviews"`
	Views     int64   `json:"views"`
	Comments  int64   `json:"comments"`
	Downloads int64   `json:"downloads"`
	// Unavailable is set when the numbers could not be computed; they are zero then.
	Unavailable bool `json:"unavailable,omitempty"`
}

// UnavailableStats returns the zeroed snapshot used when the store failed
func UnavailableStats() ResourceStats {
	return ResourceStats{Unavailable: true}
}

// RoundAverage rounds an average to two decimals
func RoundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}
