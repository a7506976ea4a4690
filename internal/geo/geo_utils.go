package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"wayfinder.openmobility.org/internal/models"
)

// earthRadiusKM is the mean radius of the Earth in kilometers.
//
// This value (6371.0 km) is the Earth's volumetric mean radius, commonly
// used for spherical great-circle approximations. No ellipsoidal
// correction is applied anywhere in this package.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const earthRadiusKM = 6371.0

// Distance returns the great-circle distance between two coordinates in
// kilometers, computed on a perfect sphere of radius earthRadiusKM.
func Distance(a, b models.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * earthRadiusKM
}

// Interpolate returns the point reached by applying ratio to the
// origin->dest lat/lon deltas, offset from the given start point. The
// range planner deliberately applies the ORIGINAL origin->dest vector to
// its current position each iteration instead of recomputing direction;
// callers rely on that exact behavior.
func Interpolate(start, origin, dest models.Coordinate, ratio float64) models.Coordinate {
	return models.Coordinate{
		Lat: start.Lat + (dest.Lat-origin.Lat)*ratio,
		Lon: start.Lon + (dest.Lon-origin.Lon)*ratio,
	}
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds: latitude between
// -90 and 90 degrees, longitude between -180 and 180 degrees.
func IsValidLatLon(lat, lon float64) bool {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// ParseLatLon parses a "lat,lon" string into a validated Coordinate.
// Out-of-range values are rejected with models.ErrInvalidCoordinate,
// never silently clamped. This is the only place coordinate strings are
// parsed; everything past this boundary works with Coordinate values.
func ParseLatLon(location string) (models.Coordinate, error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("%w: location must be in 'lat,lon' format", models.ErrInvalidCoordinate)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: latitude is not a number", models.ErrInvalidCoordinate)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: longitude is not a number", models.ErrInvalidCoordinate)
	}

	if lat < -90 || lat > 90 {
		return models.Coordinate{}, fmt.Errorf("%w: latitude must be between -90 and 90", models.ErrInvalidCoordinate)
	}
	if lon < -180 || lon > 180 {
		return models.Coordinate{}, fmt.Errorf("%w: longitude must be between -180 and 180", models.ErrInvalidCoordinate)
	}

	return models.Coordinate{Lat: lat, Lon: lon}, nil
}

// BoundingBox defines the corners of a lat/lon box.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks whether the given latitude and longitude are within the bounding box.
func (b *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// ComputeBoundingBox computes the bounding box of a set of coordinates.
// The dataset layer uses it for load-time sanity logging and metrics.
func ComputeBoundingBox(points []models.Coordinate) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, fmt.Errorf("no points to compute bounding box")
	}

	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, p := range points {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, nil
}
