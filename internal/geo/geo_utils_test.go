package geo

import (
	"errors"
	"math"
	"testing"

	"wayfinder.openmobility.org/internal/models"
)

func TestDistanceProperties(t *testing.T) {
	beirut := models.Coordinate{Lat: 33.8938, Lon: 35.5018}
	tripoli := models.Coordinate{Lat: 34.4364, Lon: 35.8211}

	d1 := Distance(beirut, tripoli)
	d2 := Distance(tripoli, beirut)

	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Distance is not symmetric: %f vs %f", d1, d2)
	}

	if d1 < 55 || d1 > 80 {
		t.Errorf("Beirut-Tripoli distance out of expected range, got %f km", d1)
	}

	if d := Distance(beirut, beirut); d > 1e-6 {
		t.Errorf("Expected zero distance for identical points, got %f", d)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// One degree of latitude on the reference sphere is R * pi/180.
	a := models.Coordinate{Lat: 0, Lon: 0}
	b := models.Coordinate{Lat: 1, Lon: 0}

	want := 6371.0 * math.Pi / 180
	got := Distance(a, b)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("Expected %f km for one degree of latitude, got %f", want, got)
	}
}

func TestParseLatLon(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     models.Coordinate
		wantErr  bool
	}{
		{
			name:     "valid coordinates",
			location: "33.8938,35.5018",
			want:     models.Coordinate{Lat: 33.8938, Lon: 35.5018},
		},
		{
			name:     "valid with whitespace",
			location: " 33.8938 , 35.5018 ",
			want:     models.Coordinate{Lat: 33.8938, Lon: 35.5018},
		},
		{
			name:     "missing longitude",
			location: "33.8938",
			wantErr:  true,
		},
		{
			name:     "too many parts",
			location: "33.8938,35.5018,12",
			wantErr:  true,
		},
		{
			name:     "not a number",
			location: "north,east",
			wantErr:  true,
		},
		{
			name:     "latitude out of range",
			location: "91.0,35.5018",
			wantErr:  true,
		},
		{
			name:     "longitude out of range",
			location: "33.8938,-180.5",
			wantErr:  true,
		},
		{
			name:     "boundary latitude accepted",
			location: "-90,180",
			want:     models.Coordinate{Lat: -90, Lon: 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLatLon(tt.location)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got none", tt.location)
				}
				if !errors.Is(err, models.ErrInvalidCoordinate) {
					t.Errorf("expected ErrInvalidCoordinate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestInterpolateUsesOriginalVector(t *testing.T) {
	origin := models.Coordinate{Lat: 10, Lon: 20}
	dest := models.Coordinate{Lat: 12, Lon: 24}
	start := models.Coordinate{Lat: 11, Lon: 21}

	// The delta applied is always origin->dest scaled by ratio, regardless
	// of where the start point sits.
	got := Interpolate(start, origin, dest, 0.5)
	want := models.Coordinate{Lat: 12, Lon: 23}
	if math.Abs(got.Lat-want.Lat) > 1e-9 || math.Abs(got.Lon-want.Lon) > 1e-9 {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestComputeBoundingBox(t *testing.T) {
	points := []models.Coordinate{
		{Lat: 33.8, Lon: 35.5},
		{Lat: 34.4, Lon: 35.8},
		{Lat: 33.2, Lon: 35.2},
	}

	bbox, err := ComputeBoundingBox(points)
	if err != nil {
		t.Fatalf("ComputeBoundingBox failed: %v", err)
	}

	if bbox.MinLat != 33.2 || bbox.MaxLat != 34.4 || bbox.MinLon != 35.2 || bbox.MaxLon != 35.8 {
		t.Errorf("unexpected bounding box: %+v", bbox)
	}

	if !bbox.Contains(33.9, 35.5) {
		t.Error("expected point inside bounding box")
	}
	if bbox.Contains(35.0, 35.5) {
		t.Error("expected point outside bounding box")
	}

	if _, err := ComputeBoundingBox(nil); err == nil {
		t.Error("expected error for empty point set")
	}
}

func TestClusterCoordinates(t *testing.T) {
	points := []models.Coordinate{
		{Lat: 33.8938, Lon: 35.5018},
		{Lat: 33.8939, Lon: 35.5019}, // same cell as the previous point
		{Lat: 34.4364, Lon: 35.8211},
	}

	clusters := ClusterCoordinates(points)
	if len(clusters) != 2 {
		t.Errorf("expected 2 clusters, got %d", len(clusters))
	}

	total := 0
	for _, n := range clusters {
		total += n
	}
	if total != len(points) {
		t.Errorf("cluster counts should sum to %d, got %d", len(points), total)
	}
}
