package route

import (
	"log/slog"

	"wayfinder.openmobility.org/internal/models"
)

// RouteService exposes the two planners. Planners are stateless between
// calls; the service exists so handlers get planning through the same
// dependency-injection shape as the other services.
type RouteService struct {
	Logger *slog.Logger
}

func NewRouteService(logger *slog.Logger) *RouteService {
	return &RouteService{Logger: logger}
}

// PlanChargingRoute plans a driving route with charging stops for a
// vehicle that currently has rangeKM of range left.
func (rs *RouteService) PlanChargingRoute(origin, dest models.Coordinate, rangeKM float64, stations []models.ChargingStation) (*models.ChargingPlan, error) {
	plan, err := planChargingRoute(origin, dest, rangeKM, stations)
	if err != nil {
		rs.Logger.Warn("Charging route planning failed",
			"origin_lat", origin.Lat, "origin_lon", origin.Lon,
			"dest_lat", dest.Lat, "dest_lon", dest.Lon,
			"range_km", rangeKM, "error", err)
		return nil, err
	}
	return plan, nil
}

// PlanTransitRoute plans a walk/transit/walk itinerary between two
// coordinates over the given stop collection.
func (rs *RouteService) PlanTransitRoute(origin, dest models.Coordinate, stops []models.TransitStop) (*models.TransitPlan, error) {
	plan, err := planTransitRoute(origin, dest, stops)
	if err != nil {
		rs.Logger.Warn("Transit route planning failed",
			"origin_lat", origin.Lat, "origin_lon", origin.Lon,
			"dest_lat", dest.Lat, "dest_lon", dest.Lon,
			"error", err)
		return nil, err
	}
	return plan, nil
}
