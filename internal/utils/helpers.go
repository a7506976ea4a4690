package utils

import "math"

// MakeMap creates and returns a map[string]string containing a single key-value pair.
func MakeMap(key, value string) map[string]string {
	return map[string]string{key: value}
}

// Round2 rounds v to two decimal places. Distances and hour estimates in
// query results are reported at this precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds v to one decimal place, used for minute estimates.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
