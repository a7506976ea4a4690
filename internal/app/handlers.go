package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/metrics"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/report"
	"wayfinder.openmobility.org/internal/search"
	"wayfinder.openmobility.org/internal/utils"
)

// Default search radii per collection, matching the dataset tool
// contracts the API grew out of.
const (
	defaultChargingRadiusKM = 5.0
	defaultTransitRadiusKM  = 2.0
	defaultPOIRadiusKM      = 3.0
)

// HealthStatus is the JSON response of /v1/healthcheck. The service is
// ready once at least one dataset collection holds records.
type HealthStatus struct {
	Status      string         `json:"status"`
	Environment string         `json:"environment"`
	Version     string         `json:"version"`
	Datasets    map[string]int `json:"datasets"`
	Ready       bool           `json:"ready"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	stations, stops, pois := app.DatasetService.Store.Counts()
	ready := stations+stops+pois > 0

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Datasets: map[string]int{
			"charging_stations": stations,
			"transit_stops":     stops,
			"pois":              pois,
		},
		Ready: ready,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusInternalServerError
	}
	app.writeJSON(w, code, status)
}

type stationResult struct {
	models.ChargingStation
	DistanceKM float64 `json:"distance_km"`
}

func (app *Application) chargingNearbyHandler(w http.ResponseWriter, r *http.Request) {
	done := app.observe("charging_nearby")

	q := r.URL.Query()
	origin, err := parseLocationParam(q, "location")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	radius, err := parseFloatParam(q, "radius_km", defaultChargingRadiusKM)
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	connector := q.Get("connector_type")

	var keep func(models.ChargingStation) bool
	if connector != "" {
		keep = func(s models.ChargingStation) bool { return s.HasConnector(connector) }
	}

	matches := search.WithinRadius(origin, radius, keep, app.DatasetService.Store.Stations())
	results := make([]stationResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, stationResult{
			ChargingStation: m.Candidate,
			DistanceKM:      utils.Round2(m.DistanceKM),
		})
	}

	app.writeJSON(w, http.StatusOK, map[string]interface{}{
		"search_location":  origin,
		"radius_km":        radius,
		"connector_filter": connector,
		"stations_found":   len(results),
		"stations":         results,
	})
	done("ok")
}

type stopResult struct {
	models.TransitStop
	DistanceKM float64 `json:"distance_km"`
}

func (app *Application) transitNearbyHandler(w http.ResponseWriter, r *http.Request) {
	done := app.observe("transit_nearby")

	q := r.URL.Query()
	origin, err := parseLocationParam(q, "location")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	radius, err := parseFloatParam(q, "radius_km", defaultTransitRadiusKM)
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	transitType := strings.ToLower(q.Get("transit_type"))

	var keep func(models.TransitStop) bool
	if transitType != "" {
		keep = func(s models.TransitStop) bool { return s.Type == transitType }
	}

	matches := search.WithinRadius(origin, radius, keep, app.DatasetService.Store.Stops())
	results := make([]stopResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, stopResult{
			TransitStop: m.Candidate,
			DistanceKM:  utils.Round2(m.DistanceKM),
		})
	}

	app.writeJSON(w, http.StatusOK, map[string]interface{}{
		"search_location":     origin,
		"radius_km":           radius,
		"transit_type_filter": transitType,
		"stops_found":         len(results),
		"stops":               results,
	})
	done("ok")
}

type poiResult struct {
	models.POI
	DistanceKM float64 `json:"distance_km"`
}

func (app *Application) poisNearbyHandler(w http.ResponseWriter, r *http.Request) {
	done := app.observe("pois_nearby")

	q := r.URL.Query()
	origin, err := parseLocationParam(q, "location")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	radius, err := parseFloatParam(q, "radius_km", defaultPOIRadiusKM)
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	category := strings.ToLower(q.Get("category"))

	var minRating float64
	hasMinRating := q.Get("min_rating") != ""
	if hasMinRating {
		minRating, err = parseFloatParam(q, "min_rating", 0)
		if err != nil {
			app.badRequest(w, err)
			done("error")
			return
		}
	}

	keep := func(p models.POI) bool {
		if category != "" && p.Category != category {
			return false
		}
		if hasMinRating && p.Rating < minRating {
			return false
		}
		return true
	}

	matches := search.WithinRadius(origin, radius, keep, app.DatasetService.Store.POIs())
	results := make([]poiResult, 0, len(matches))
	categories := make(map[string]int)
	for _, m := range matches {
		results = append(results, poiResult{
			POI:        m.Candidate,
			DistanceKM: utils.Round2(m.DistanceKM),
		})
		categories[m.Candidate.Category]++
	}

	app.writeJSON(w, http.StatusOK, map[string]interface{}{
		"search_location":    origin,
		"radius_km":          radius,
		"category_filter":    category,
		"min_rating_filter":  minRating,
		"pois_found":         len(results),
		"pois":               results,
		"categories_summary": categories,
	})
	done("ok")
}

func (app *Application) chargingRouteHandler(w http.ResponseWriter, r *http.Request) {
	done := app.observe("charging_route")

	q := r.URL.Query()
	origin, err := parseLocationParam(q, "origin")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	dest, err := parseLocationParam(q, "destination")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	rangeKM, err := requireFloatParam(q, "range_km")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	if rangeKM <= 0 {
		app.badRequest(w, fmt.Errorf("range_km must be positive, got %g", rangeKM))
		done("error")
		return
	}

	plan, err := app.RouteService.PlanChargingRoute(origin, dest, rangeKM, app.DatasetService.Store.Stations())
	if err != nil {
		app.planningError(w, err, models.ErrNoRouteFound)
		metrics.ChargingStopsPlanned.WithLabelValues("error").Observe(0)
		done("error")
		return
	}

	metrics.ChargingStopsPlanned.WithLabelValues("ok").Observe(float64(plan.ChargingStopsNeeded))
	app.writeJSON(w, http.StatusOK, plan)
	done("ok")
}

func (app *Application) transitRouteHandler(w http.ResponseWriter, r *http.Request) {
	done := app.observe("transit_route")

	q := r.URL.Query()
	origin, err := parseLocationParam(q, "origin")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	dest, err := parseLocationParam(q, "destination")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}

	stops := app.DatasetService.Store.Stops()
	if types := q.Get("transit_types"); types != "" {
		wanted := make(map[string]bool)
		for _, t := range strings.Split(types, ",") {
			wanted[strings.ToLower(strings.TrimSpace(t))] = true
		}
		filtered := stops[:0]
		for _, s := range stops {
			if wanted[s.Type] {
				filtered = append(filtered, s)
			}
		}
		stops = filtered
	}

	plan, err := app.RouteService.PlanTransitRoute(origin, dest, stops)
	if err != nil {
		app.planningError(w, err, models.ErrNoStopsAvailable)
		done("error")
		return
	}

	app.writeJSON(w, http.StatusOK, plan)
	done("ok")
}

func (app *Application) costCompareHandler(w http.ResponseWriter, r *http.Request) {
	done := app.observe("cost_compare")

	q := r.URL.Query()
	origin, err := parseLocationParam(q, "origin")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	dest, err := parseLocationParam(q, "destination")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	vehicleType := strings.ToLower(q.Get("vehicle_type"))
	consumption, err := requireFloatParam(q, "consumption_per_100km")
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}
	if consumption <= 0 {
		app.badRequest(w, fmt.Errorf("consumption_per_100km must be positive, got %g", consumption))
		done("error")
		return
	}

	estimate, err := app.CostService.CompareEnergyCosts(origin, dest, vehicleType, consumption)
	if err != nil {
		app.badRequest(w, err)
		done("error")
		return
	}

	app.writeJSON(w, http.StatusOK, estimate)
	done("ok")
}

// parseLocationParam reads a required "lat,lon" query parameter.
func parseLocationParam(q url.Values, key string) (models.Coordinate, error) {
	raw := q.Get(key)
	if raw == "" {
		return models.Coordinate{}, fmt.Errorf("missing required parameter %q", key)
	}
	c, err := geo.ParseLatLon(raw)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return c, nil
}

func parseFloatParam(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return v, nil
}

func requireFloatParam(q url.Values, key string) (float64, error) {
	if q.Get(key) == "" {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	return parseFloatParam(q, key, 0)
}

func (app *Application) writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.Logger.Error("Failed to encode response", "error", err)
	}
}

func (app *Application) badRequest(w http.ResponseWriter, err error) {
	app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// planningError maps the expected planner failure to 404 and everything
// else to 500 with a Sentry report.
func (app *Application) planningError(w http.ResponseWriter, err, notFound error) {
	if errors.Is(err, notFound) {
		app.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
		Level: sentry.LevelError,
	})
	app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// observe starts the duration timer for an operation and returns the
// completion callback that records duration and outcome.
func (app *Application) observe(operation string) func(result string) {
	start := time.Now()
	return func(result string) {
		metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		metrics.QueriesTotal.WithLabelValues(operation, result).Inc()
	}
}
