package route

import (
	"errors"
	"fmt"

	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/search"
	"wayfinder.openmobility.org/internal/utils"
)

const (
	walkingSpeedKMH = 5.0

	// Assumed line speeds by stop class. Surface transit (bus) is the
	// slower class; metro and tram use the faster one.
	surfaceSpeedKMH = 30.0
	railSpeedKMH    = 50.0

	avgWaitMinutes = 10.0
)

// planTransitRoute composes a walk -> transit -> walk itinerary between
// two coordinates by anchoring each endpoint to its nearest transit stop.
//
// This is a single-hop model: there is no graph search over transit
// connections and at most one transit leg, so the transfer count is always
// zero. When the two anchors share no route, the first route of the origin
// stop is used; that default is arbitrary, not an optimality claim.
func planTransitRoute(origin, dest models.Coordinate, stops []models.TransitStop) (*models.TransitPlan, error) {
	total := geo.Distance(origin, dest)

	originMatch, err := search.Nearest(origin, stops)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCollection) {
			return nil, models.ErrNoStopsAvailable
		}
		return nil, err
	}
	destMatch, err := search.Nearest(dest, stops)
	if err != nil {
		return nil, err
	}

	originStop := originMatch.Candidate
	destStop := destMatch.Candidate

	var legs []models.TransitLeg
	totalMinutes := 0.0

	walkToStopMinutes := (originMatch.DistanceKM / walkingSpeedKMH) * 60
	legs = append(legs, models.TransitLeg{
		Segment:      1,
		Type:         "walk",
		From:         "Origin",
		To:           originStop.Name,
		DistanceKM:   utils.Round2(originMatch.DistanceKM),
		TimeMinutes:  utils.Round1(walkToStopMinutes),
		Instructions: fmt.Sprintf("Walk to %s", originStop.Name),
	})
	totalMinutes += walkToStopMinutes

	if originStop.ID != destStop.ID {
		transitDistance := geo.Distance(originStop.Location, destStop.Location)

		speed := railSpeedKMH
		if originStop.Type == "bus" {
			speed = surfaceSpeedKMH
		}
		transitMinutes := (transitDistance / speed) * 60
		selectedRoute := selectRoute(originStop, destStop)

		legs = append(legs, models.TransitLeg{
			Segment:           2,
			Type:              originStop.Type,
			From:              originStop.Name,
			To:                destStop.Name,
			DistanceKM:        utils.Round2(transitDistance),
			Route:             selectedRoute,
			WaitTimeMinutes:   avgWaitMinutes,
			TravelTimeMinutes: utils.Round1(transitMinutes),
			TimeMinutes:       utils.Round1(avgWaitMinutes + transitMinutes),
			Instructions:      fmt.Sprintf("Take %s from %s to %s", selectedRoute, originStop.Name, destStop.Name),
		})
		totalMinutes += avgWaitMinutes + transitMinutes
	}

	walkToDestMinutes := (destMatch.DistanceKM / walkingSpeedKMH) * 60
	legs = append(legs, models.TransitLeg{
		Segment:      len(legs) + 1,
		Type:         "walk",
		From:         destStop.Name,
		To:           "Destination",
		DistanceKM:   utils.Round2(destMatch.DistanceKM),
		TimeMinutes:  utils.Round1(walkToDestMinutes),
		Instructions: fmt.Sprintf("Walk to destination from %s", destStop.Name),
	})
	totalMinutes += walkToDestMinutes

	transitSegments := 0
	for _, leg := range legs {
		if leg.Type != "walk" {
			transitSegments++
		}
	}
	transfers := transitSegments - 1
	if transfers < 0 {
		transfers = 0
	}

	return &models.TransitPlan{
		Origin:           origin,
		Destination:      dest,
		TotalDistanceKM:  utils.Round2(total),
		Legs:             legs,
		TotalTimeMinutes: utils.Round1(totalMinutes),
		Transfers:        transfers,
		Summary: models.TransitSummary{
			TotalSegments:          len(legs),
			WalkingSegments:        len(legs) - transitSegments,
			TransitSegments:        transitSegments,
			TotalWalkingDistanceKM: utils.Round2(originMatch.DistanceKM + destMatch.DistanceKM),
		},
	}, nil
}

// selectRoute picks a service common to both stops when one exists,
// otherwise falls back to the origin stop's first route. A stop with no
// routes at all yields an empty route label.
func selectRoute(originStop, destStop models.TransitStop) string {
	destRoutes := make(map[string]bool, len(destStop.Routes))
	for _, r := range destStop.Routes {
		destRoutes[r] = true
	}
	for _, r := range originStop.Routes {
		if destRoutes[r] {
			return r
		}
	}
	if len(originStop.Routes) > 0 {
		return originStop.Routes[0]
	}
	return ""
}
