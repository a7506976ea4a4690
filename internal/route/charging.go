package route

import (
	"fmt"
	"math"

	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/search"
	"wayfinder.openmobility.org/internal/utils"
)

const (
	// avgDrivingSpeedKMH is the assumed average driving speed used for all
	// driving-time estimates.
	avgDrivingSpeedKMH = 80.0

	// safetyFactor leaves a 20% reserve on the usable range each leg so a
	// stop is never planned at the exact edge of the battery.
	safetyFactor = 0.8

	// chargeTimeFactor feeds the stop-duration estimate
	// (range_km * chargeTimeFactor) / max_power_kw. The formula is a fixed
	// contract of this planner, not a physical energy model.
	chargeTimeFactor = 0.15
)

// planChargingRoute produces a driving plan between origin and destination
// for a vehicle with the given remaining range, inserting charging stops
// when the trip exceeds what the battery can cover.
//
// The planner is a greedy two-state loop. While the destination is out of
// reach it interpolates a target point along the ORIGINAL origin->dest
// vector (progress ratio = safe range / total distance), collects all
// operational stations reachable within the safe range of the current
// position, and picks the one closest to the interpolated target, not the
// one closest to the current position. After each stop the battery is
// assumed fully recharged. The non-recomputed direction vector can under-
// or over-shoot on multi-stop trips; it is kept as observable behavior.
func planChargingRoute(origin, dest models.Coordinate, rangeKM float64, stations []models.ChargingStation) (*models.ChargingPlan, error) {
	total := geo.Distance(origin, dest)

	// Direct: the whole trip fits in the current charge.
	if total <= rangeKM {
		drivingTime := total / avgDrivingSpeedKMH
		return &models.ChargingPlan{
			Origin:              origin,
			Destination:         dest,
			TotalDistanceKM:     utils.Round2(total),
			ChargingStopsNeeded: 0,
			Legs: []models.DriveLeg{{
				Leg:              1,
				From:             "Origin",
				To:               "Destination",
				DistanceKM:       utils.Round2(total),
				ChargingStop:     nil,
				DrivingTimeHours: utils.Round2(drivingTime),
			}},
			TotalTimeHours: utils.Round2(drivingTime),
		}, nil
	}

	// Segmenting: walk toward the destination one charge at a time.
	var legs []models.DriveLeg
	current := origin
	remaining := total
	currentRange := rangeKM
	legNumber := 1
	totalTime := 0.0

	for remaining > 0 {
		safeRange := currentRange * safetyFactor

		if safeRange >= remaining {
			drivingTime := remaining / avgDrivingSpeedKMH
			legs = append(legs, models.DriveLeg{
				Leg:              legNumber,
				From:             legOrigin(legNumber),
				To:               "Destination",
				DistanceKM:       utils.Round2(remaining),
				ChargingStop:     nil,
				DrivingTimeHours: utils.Round2(drivingTime),
			})
			totalTime += drivingTime
			remaining = 0
			continue
		}

		target := geo.Interpolate(current, origin, dest, safeRange/total)

		station, ok := pickStation(current, target, safeRange, stations)
		if !ok {
			return nil, models.ErrNoRouteFound
		}

		legDistance := geo.Distance(current, station.Location)
		if legDistance <= 0 {
			// A zero-length leg would never shrink the remaining distance.
			return nil, fmt.Errorf("charging planner stalled at leg %d: non-positive leg distance %.6f km", legNumber, legDistance)
		}

		maxPower := station.MaxPowerKW()
		var chargingTime float64
		if maxPower > 0 {
			chargingTime = (rangeKM * chargeTimeFactor) / maxPower
		}
		drivingTime := legDistance / avgDrivingSpeedKMH

		legs = append(legs, models.DriveLeg{
			Leg:        legNumber,
			From:       legOrigin(legNumber),
			To:         station.Name,
			DistanceKM: utils.Round2(legDistance),
			ChargingStop: &models.ChargingStopInfo{
				StationID:         station.ID,
				StationName:       station.Name,
				Address:           station.Address,
				Location:          station.Location,
				ChargingTimeHours: utils.Round2(chargingTime),
				Connectors:        station.ConnectorTypes,
				MaxPowerKW:        maxPower,
				PricingPerKWH:     station.PricingPerKWH,
			},
			DrivingTimeHours: utils.Round2(drivingTime),
		})

		totalTime += drivingTime + chargingTime
		current = station.Location
		remaining -= legDistance
		currentRange = rangeKM // full recharge assumed
		legNumber++
	}

	stops := 0
	for _, leg := range legs {
		if leg.ChargingStop != nil {
			stops++
		}
	}

	return &models.ChargingPlan{
		Origin:              origin,
		Destination:         dest,
		TotalDistanceKM:     utils.Round2(total),
		ChargingStopsNeeded: stops,
		Legs:                legs,
		TotalTimeHours:      utils.Round2(totalTime),
	}, nil
}

// pickStation returns the operational station reachable within safeRange
// of current that lies closest to the interpolated target point.
func pickStation(current, target models.Coordinate, safeRange float64, stations []models.ChargingStation) (models.ChargingStation, bool) {
	reachable := search.WithinRadius(current, safeRange, func(s models.ChargingStation) bool {
		return s.IsOperational
	}, stations)

	var best models.ChargingStation
	bestDist := math.Inf(1)
	found := false
	for _, m := range reachable {
		if d := geo.Distance(target, m.Candidate.Location); d < bestDist {
			bestDist = d
			best = m.Candidate
			found = true
		}
	}
	return best, found
}

// legOrigin labels where a leg starts: the trip origin for the first leg,
// the previous charging station for every later one.
func legOrigin(legNumber int) string {
	if legNumber > 1 {
		return "Charging Station"
	}
	return "Origin"
}
