package route

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"wayfinder.openmobility.org/internal/models"
)

func newTestRouteService() *RouteService {
	return NewRouteService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testStation(id string, lat, lon float64, operational bool) models.ChargingStation {
	return models.ChargingStation{
		ID:             id,
		Name:           "Station " + id,
		Address:        "Test Address",
		Location:       models.Coordinate{Lat: lat, Lon: lon},
		ConnectorTypes: []string{"Type2", "CCS"},
		PowerRatingsKW: map[string]float64{"Type2": 22, "CCS": 150},
		PricingPerKWH:  0.18,
		IsOperational:  operational,
	}
}

func TestPlanChargingRouteDirect(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.8938, Lon: 35.5018}
	dest := models.Coordinate{Lat: 33.9500, Lon: 35.5500}

	plan, err := rs.PlanChargingRoute(origin, dest, 300, nil)
	if err != nil {
		t.Fatalf("PlanChargingRoute failed: %v", err)
	}

	if len(plan.Legs) != 1 {
		t.Fatalf("expected exactly one leg for a trip within range, got %d", len(plan.Legs))
	}
	if plan.Legs[0].ChargingStop != nil {
		t.Error("direct route must not contain a charging stop")
	}
	if plan.ChargingStopsNeeded != 0 {
		t.Errorf("expected 0 charging stops, got %d", plan.ChargingStopsNeeded)
	}
	if plan.Legs[0].From != "Origin" || plan.Legs[0].To != "Destination" {
		t.Errorf("unexpected leg labels: %s -> %s", plan.Legs[0].From, plan.Legs[0].To)
	}

	wantTime := plan.TotalDistanceKM / 80
	if math.Abs(plan.TotalTimeHours-wantTime) > 0.02 {
		t.Errorf("expected ~%.2f hours at 80 km/h, got %.2f", wantTime, plan.TotalTimeHours)
	}
}

func TestPlanChargingRouteIdenticalEndpoints(t *testing.T) {
	rs := newTestRouteService()
	p := models.Coordinate{Lat: 33.8938, Lon: 35.5018}

	plan, err := rs.PlanChargingRoute(p, p, 50, nil)
	if err != nil {
		t.Fatalf("PlanChargingRoute failed: %v", err)
	}
	if plan.TotalDistanceKM >= 0.1 {
		t.Errorf("identical endpoints should give near-zero distance, got %f", plan.TotalDistanceKM)
	}
	if len(plan.Legs) != 1 || plan.Legs[0].ChargingStop != nil {
		t.Error("identical endpoints should yield a single stop-free leg")
	}
}

func TestPlanChargingRouteSegmented(t *testing.T) {
	rs := newTestRouteService()
	// Beirut -> Tripoli, about 67 km great-circle, planned on a 30 km
	// range: the 24 km safe range forces several charging stops.
	origin := models.Coordinate{Lat: 33.8938, Lon: 35.5018}
	dest := models.Coordinate{Lat: 34.4364, Lon: 35.8211}

	stations := []models.ChargingStation{
		testStation("st_coast_1", 34.05, 35.60, true),
		testStation("st_coast_2", 34.22, 35.70, true),
		testStation("st_coast_3", 34.38, 35.79, true),
		testStation("st_offline", 34.10, 35.62, false),
	}

	plan, err := rs.PlanChargingRoute(origin, dest, 30, stations)
	if err != nil {
		t.Fatalf("PlanChargingRoute failed: %v", err)
	}

	if len(plan.Legs) < 2 {
		t.Fatalf("expected at least 2 legs, got %d", len(plan.Legs))
	}
	if plan.ChargingStopsNeeded < 1 {
		t.Fatal("expected at least one charging stop")
	}

	last := plan.Legs[len(plan.Legs)-1]
	if last.To != "Destination" || last.ChargingStop != nil {
		t.Error("final leg must reach the destination without a charging stop")
	}

	var sum float64
	stops := 0
	for i, leg := range plan.Legs {
		sum += leg.DistanceKM
		if leg.ChargingStop != nil {
			stops++
			if leg.ChargingStop.ChargingTimeHours <= 0 {
				t.Errorf("leg %d: expected positive charging time", i+1)
			}
			if leg.ChargingStop.StationID == "st_offline" {
				t.Error("non-operational station must never be selected")
			}
		}
		if leg.Leg != i+1 {
			t.Errorf("leg numbering broken at index %d", i)
		}
	}

	if stops != plan.ChargingStopsNeeded {
		t.Errorf("reported %d stops but legs carry %d annotations", plan.ChargingStopsNeeded, stops)
	}
	if math.Abs(sum-plan.TotalDistanceKM) > 0.05 {
		t.Errorf("leg distances sum to %.2f, total is %.2f", sum, plan.TotalDistanceKM)
	}
}

func TestPlanChargingRoutePrefersStationNearInterpolatedTarget(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.90, Lon: 35.50}
	dest := models.Coordinate{Lat: 34.30, Lon: 35.74}

	// near_current sits a few km from the origin; on_track sits close to
	// the interpolated target point. Both are reachable, and the planner
	// must rank by distance to the target, not distance from the origin.
	stations := []models.ChargingStation{
		testStation("near_current", 33.95, 35.53, true),
		testStation("on_track", 34.08, 35.60, true),
		testStation("relay", 34.22, 35.68, true),
	}

	plan, err := rs.PlanChargingRoute(origin, dest, 30, stations)
	if err != nil {
		t.Fatalf("PlanChargingRoute failed: %v", err)
	}

	if plan.Legs[0].ChargingStop == nil {
		t.Fatal("expected a charging stop on the first leg")
	}
	if got := plan.Legs[0].ChargingStop.StationID; got != "on_track" {
		t.Errorf("expected the station nearest the interpolated target, got %s", got)
	}
}

func TestPlanChargingRouteNoRouteFound(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.8938, Lon: 35.5018}
	dest := models.Coordinate{Lat: 34.4364, Lon: 35.8211}

	tests := []struct {
		name     string
		stations []models.ChargingStation
	}{
		{name: "no stations at all", stations: nil},
		{
			name: "only non-operational stations in reach",
			stations: []models.ChargingStation{
				testStation("st_down", 34.05, 35.60, false),
			},
		},
		{
			name: "stations beyond safe range",
			stations: []models.ChargingStation{
				testStation("st_far", 34.40, 35.80, true),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rs.PlanChargingRoute(origin, dest, 30, tt.stations)
			if !errors.Is(err, models.ErrNoRouteFound) {
				t.Errorf("expected ErrNoRouteFound, got %v", err)
			}
		})
	}
}

func TestPlanChargingRouteStallGuard(t *testing.T) {
	rs := newTestRouteService()
	origin := models.Coordinate{Lat: 33.8938, Lon: 35.5018}
	dest := models.Coordinate{Lat: 34.4364, Lon: 35.8211}

	// The only reachable station sits exactly at the origin, so the leg
	// toward it has zero length and can never shrink the remaining
	// distance. The planner must fail instead of looping forever.
	stations := []models.ChargingStation{
		testStation("st_here", 33.8938, 35.5018, true),
	}

	_, err := rs.PlanChargingRoute(origin, dest, 30, stations)
	if err == nil {
		t.Fatal("expected an error for a zero-length leg")
	}
	if errors.Is(err, models.ErrNoRouteFound) {
		t.Errorf("stall must be reported as an internal invariant violation, got %v", err)
	}
}
