package dataset

import (
	"sync"

	"wayfinder.openmobility.org/internal/models"
)

// Store is a thread-safe in-memory holder for the three record
// collections the planners query. It allows concurrent access
// using read-write locks using a sync.RWMutex.
//
// Accessors return defensive copies so callers can sort or filter the
// slices without racing a concurrent reload.
type Store struct {
	mu       sync.RWMutex
	stations []models.ChargingStation
	stops    []models.TransitStop
	pois     []models.POI
}

// NewStore initializes and returns a new, empty Store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetStations(stations []models.ChargingStation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations = stations
}

func (s *Store) SetStops(stops []models.TransitStop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops = stops
}

func (s *Store) SetPOIs(pois []models.POI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pois = pois
}

func (s *Store) Stations() []models.ChargingStation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChargingStation, len(s.stations))
	copy(out, s.stations)
	return out
}

func (s *Store) Stops() []models.TransitStop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TransitStop, len(s.stops))
	copy(out, s.stops)
	return out
}

func (s *Store) POIs() []models.POI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.POI, len(s.pois))
	copy(out, s.pois)
	return out
}

// Counts returns the number of records per collection, for logging and
// the dataset gauge metrics.
func (s *Store) Counts() (stations, stops, pois int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stations), len(s.stops), len(s.pois)
}
