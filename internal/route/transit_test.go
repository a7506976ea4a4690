package route

import (
	"errors"
	"math"
	"testing"

	"wayfinder.openmobility.org/internal/models"
)

func testStop(id, name, stopType string, lat, lon float64, routes ...string) models.TransitStop {
	return models.TransitStop{
		ID:       id,
		Name:     name,
		Type:     stopType,
		Location: models.Coordinate{Lat: lat, Lon: lon},
		Routes:   routes,
	}
}

func TestPlanTransitRouteWalkTransitWalk(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.8900, Lon: 35.5000}
	dest := models.Coordinate{Lat: 33.9950, Lon: 35.5100}

	stops := []models.TransitStop{
		testStop("hamra", "Hamra", "bus", 33.8960, 35.4780, "B1", "B7"),
		testStop("jounieh", "Jounieh Center", "bus", 33.9800, 35.6170, "B7", "B9"),
	}

	plan, err := rs.PlanTransitRoute(origin, dest, stops)
	if err != nil {
		t.Fatalf("PlanTransitRoute failed: %v", err)
	}

	if len(plan.Legs) != 3 {
		t.Fatalf("expected walk/transit/walk legs, got %d", len(plan.Legs))
	}
	if plan.Legs[0].Type != "walk" || plan.Legs[2].Type != "walk" {
		t.Error("first and last legs must be walking legs")
	}
	if plan.Legs[1].Type != "bus" {
		t.Errorf("expected bus transit leg, got %s", plan.Legs[1].Type)
	}
	if plan.Legs[1].Route != "B7" {
		t.Errorf("expected the shared route B7, got %s", plan.Legs[1].Route)
	}
	if plan.Legs[1].WaitTimeMinutes != 10 {
		t.Errorf("expected the fixed 10 minute wait, got %f", plan.Legs[1].WaitTimeMinutes)
	}

	// Surface transit runs at 30 km/h.
	wantTravel := plan.Legs[1].DistanceKM / 30 * 60
	if math.Abs(plan.Legs[1].TravelTimeMinutes-wantTravel) > 0.3 {
		t.Errorf("expected ~%.1f travel minutes at 30 km/h, got %.1f", wantTravel, plan.Legs[1].TravelTimeMinutes)
	}

	if plan.Transfers != 0 {
		t.Errorf("single-hop model can never require transfers, got %d", plan.Transfers)
	}

	var sum float64
	for _, leg := range plan.Legs {
		sum += leg.TimeMinutes
	}
	if math.Abs(sum-plan.TotalTimeMinutes) > 0.5 {
		t.Errorf("leg durations sum to %.1f, total is %.1f", sum, plan.TotalTimeMinutes)
	}

	if plan.Summary.TotalSegments != 3 || plan.Summary.WalkingSegments != 2 || plan.Summary.TransitSegments != 1 {
		t.Errorf("unexpected summary: %+v", plan.Summary)
	}
}

func TestPlanTransitRouteRailSpeed(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.8900, Lon: 35.5000}
	dest := models.Coordinate{Lat: 33.9950, Lon: 35.5100}

	stops := []models.TransitStop{
		testStop("m1", "Metro West", "metro", 33.8910, 35.5010, "M1"),
		testStop("m2", "Metro East", "metro", 33.9940, 35.5090, "M1"),
	}

	plan, err := rs.PlanTransitRoute(origin, dest, stops)
	if err != nil {
		t.Fatalf("PlanTransitRoute failed: %v", err)
	}

	wantTravel := plan.Legs[1].DistanceKM / 50 * 60
	if math.Abs(plan.Legs[1].TravelTimeMinutes-wantTravel) > 0.3 {
		t.Errorf("expected ~%.1f travel minutes at 50 km/h, got %.1f", wantTravel, plan.Legs[1].TravelTimeMinutes)
	}
}

func TestPlanTransitRouteSameAnchorStop(t *testing.T) {
	rs := newTestRouteService()
	// Both endpoints sit next to the same stop: the plan is walk-only.
	origin := models.Coordinate{Lat: 33.8930, Lon: 35.5010}
	dest := models.Coordinate{Lat: 33.8950, Lon: 35.5030}

	stops := []models.TransitStop{
		testStop("only", "Center", "bus", 33.8940, 35.5020, "B1"),
	}

	plan, err := rs.PlanTransitRoute(origin, dest, stops)
	if err != nil {
		t.Fatalf("PlanTransitRoute failed: %v", err)
	}

	if len(plan.Legs) != 2 {
		t.Fatalf("expected two walking legs, got %d", len(plan.Legs))
	}
	for _, leg := range plan.Legs {
		if leg.Type != "walk" {
			t.Errorf("expected walk leg, got %s", leg.Type)
		}
	}
	if plan.Summary.TransitSegments != 0 || plan.Transfers != 0 {
		t.Errorf("walk-only plan should have no transit segments: %+v", plan.Summary)
	}
}

func TestPlanTransitRouteIdenticalEndpoints(t *testing.T) {
	rs := newTestRouteService()
	p := models.Coordinate{Lat: 33.8938, Lon: 35.5018}

	stops := []models.TransitStop{
		testStop("near", "Nearby", "bus", 33.8940, 35.5020, "B1"),
	}

	plan, err := rs.PlanTransitRoute(p, p, stops)
	if err != nil {
		t.Fatalf("PlanTransitRoute failed: %v", err)
	}
	if plan.TotalDistanceKM >= 0.1 {
		t.Errorf("identical endpoints should give near-zero total distance, got %f", plan.TotalDistanceKM)
	}
	if plan.Summary.TransitSegments != 0 {
		t.Error("identical endpoints anchored to one stop must not produce a transit leg")
	}
	if plan.TotalTimeMinutes > 10 {
		t.Errorf("expected a near-zero-duration walk-only plan, got %.1f minutes", plan.TotalTimeMinutes)
	}
}

func TestPlanTransitRouteNoStops(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.8938, Lon: 35.5018}
	dest := models.Coordinate{Lat: 34.4364, Lon: 35.8211}

	_, err := rs.PlanTransitRoute(origin, dest, nil)
	if !errors.Is(err, models.ErrNoStopsAvailable) {
		t.Errorf("expected ErrNoStopsAvailable, got %v", err)
	}
}

func TestSelectRouteFallback(t *testing.T) {
	tests := []struct {
		name   string
		origin models.TransitStop
		dest   models.TransitStop
		want   string
	}{
		{
			name:   "common route wins",
			origin: testStop("a", "A", "bus", 0, 0, "B1", "B7"),
			dest:   testStop("b", "B", "bus", 0, 0, "B7", "B9"),
			want:   "B7",
		},
		{
			name:   "no common route falls back to origin's first",
			origin: testStop("a", "A", "bus", 0, 0, "B1", "B2"),
			dest:   testStop("b", "B", "bus", 0, 0, "B9"),
			want:   "B1",
		},
		{
			name:   "origin without routes yields empty label",
			origin: testStop("a", "A", "bus", 0, 0),
			dest:   testStop("b", "B", "bus", 0, 0, "B9"),
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectRoute(tt.origin, tt.dest); got != tt.want {
				t.Errorf("selectRoute() = %q, want %q", got, tt.want)
			}
		})
	}
}
