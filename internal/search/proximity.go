// Package search implements the proximity scans shared by every
// "nearby X" query and by the route planners: radius filtering with
// ascending-distance ranking, and single nearest-neighbor lookup.
//
// All scans are linear over an immutable snapshot of the candidate
// collection; the package holds no state across calls.
package search

import (
	"sort"

	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/models"
)

// Locatable is any dataset record with a coordinate. Charging stations,
// transit stops, and POIs all satisfy it.
type Locatable interface {
	Coord() models.Coordinate
}

// Match pairs a candidate with its great-circle distance from the query origin.
type Match[T Locatable] struct {
	Candidate  T
	DistanceKM float64
}

// WithinRadius returns all candidates within radiusKM of origin that pass
// the optional keep predicate, ranked by ascending distance.
//
// The radius bound is inclusive: a candidate at exactly radiusKM is kept.
// Ties keep the original collection order (stable sort, no secondary key).
// An empty result is a successful outcome, not an error.
func WithinRadius[T Locatable](origin models.Coordinate, radiusKM float64, keep func(T) bool, candidates []T) []Match[T] {
	matches := make([]Match[T], 0)

	for _, c := range candidates {
		distance := geo.Distance(origin, c.Coord())
		if distance > radiusKM {
			continue
		}
		if keep != nil && !keep(c) {
			continue
		}
		matches = append(matches, Match[T]{Candidate: c, DistanceKM: distance})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKM < matches[j].DistanceKM
	})

	return matches
}
