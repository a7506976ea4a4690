package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
	"wayfinder.openmobility.org/internal/models"
)

const s2Level = 10 // S2 cell level with 7-10 km spatial resolution

// S2ClusterID generates a stable S2-based cluster ID for a coordinate.
// The dataset layer groups loaded records by cell to report coverage
// density per area.
func S2ClusterID(c models.Coordinate, level int) string {
	ll := s2.LatLngFromDegrees(c.Lat, c.Lon)
	cellID := s2.CellIDFromLatLng(ll).Parent(level)
	return fmt.Sprintf("s2_%d", uint64(cellID))
}

// ClusterCoordinates buckets the given coordinates into S2 cells at the
// default resolution and returns the record count per cell.
func ClusterCoordinates(points []models.Coordinate) map[string]int {
	clusters := make(map[string]int)
	for _, p := range points {
		clusters[S2ClusterID(p, s2Level)]++
	}
	return clusters
}
