package models

import "errors"

// Failure taxonomy of the query engine. All of these are terminal, reported
// outcomes; the engine performs no I/O so there is no transient class.
// An empty result set from a radius search is a success, not one of these.
var (
	// ErrInvalidCoordinate marks a latitude outside [-90, 90] or a
	// longitude outside [-180, 180]. Surfaced to the caller, never clamped.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrEmptyCollection is returned by nearest-neighbor lookups when the
	// candidate collection has no elements.
	ErrEmptyCollection = errors.New("empty candidate collection")

	// ErrNoRouteFound is returned when range-constrained planning exhausts
	// all candidate stations before reaching the destination.
	ErrNoRouteFound = errors.New("no suitable charging stations found along the route")

	// ErrNoStopsAvailable is returned by multi-modal planning when there are
	// no transit stops to anchor the trip on.
	ErrNoStopsAvailable = errors.New("no transit stops found near origin or destination")
)
