package search

import (
	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/models"
)

// Nearest returns the minimum-distance candidate to the given point in a
// single pass. It fails with models.ErrEmptyCollection when the collection
// has no elements; callers must treat an empty dataset as a distinct
// condition from "no match within radius".
func Nearest[T Locatable](point models.Coordinate, candidates []T) (Match[T], error) {
	if len(candidates) == 0 {
		return Match[T]{}, models.ErrEmptyCollection
	}

	best := Match[T]{Candidate: candidates[0], DistanceKM: geo.Distance(point, candidates[0].Coord())}
	for _, c := range candidates[1:] {
		if d := geo.Distance(point, c.Coord()); d < best.DistanceKM {
			best = Match[T]{Candidate: c, DistanceKM: d}
		}
	}

	return best, nil
}
