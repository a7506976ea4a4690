package app

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"wayfinder.openmobility.org/internal/config"
	"wayfinder.openmobility.org/internal/cost"
	"wayfinder.openmobility.org/internal/dataset"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/route"
)

// newTestApplication builds an Application over an in-memory dataset
// seeded with a handful of Beirut-area records.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.NewConfig(4000, "development")

	store := dataset.NewStore()
	store.SetStations(testStations())
	store.SetStops(testStops())
	store.SetPOIs(testPOIs())

	client := &http.Client{Timeout: 10 * time.Second}

	return &Application{
		Config:         cfg,
		DatasetService: dataset.NewService(store, logger, client),
		RouteService:   route.NewRouteService(logger),
		CostService:    cost.NewCostService(),
		Logger:         logger,
		Version:        "test-version",
	}
}

func testStations() []models.ChargingStation {
	return []models.ChargingStation{
		{
			ID:             "cs_hamra_01",
			Name:           "Hamra Street Charging Hub",
			Address:        "Hamra Street, Beirut",
			Location:       models.Coordinate{Lat: 33.8959, Lon: 35.4784},
			ConnectorTypes: []string{"Type2", "CCS"},
			PowerRatingsKW: map[string]float64{"Type2": 22, "CCS": 120},
			PricingPerKWH:  0.18,
			IsOperational:  true,
		},
		{
			ID:             "cs_dbayeh_01",
			Name:           "Dbayeh Highway Station",
			Address:        "Coastal Highway, Dbayeh",
			Location:       models.Coordinate{Lat: 33.9280, Lon: 35.5860},
			ConnectorTypes: []string{"CHAdeMO"},
			PowerRatingsKW: map[string]float64{"CHAdeMO": 50},
			PricingPerKWH:  0.22,
			IsOperational:  true,
		},
	}
}

func testStops() []models.TransitStop {
	return []models.TransitStop{
		{
			ID:       "ts_cola_01",
			Name:     "Cola Intersection",
			Type:     "bus",
			Location: models.Coordinate{Lat: 33.8772, Lon: 35.4981},
			Routes:   []string{"B2", "B7"},
		},
		{
			ID:       "ts_jounieh_01",
			Name:     "Jounieh Center",
			Type:     "bus",
			Location: models.Coordinate{Lat: 33.9805, Lon: 35.6174},
			Routes:   []string{"B7", "B20"},
		},
		{
			ID:       "ts_metro_cmc_01",
			Name:     "City Center Metro",
			Type:     "metro",
			Location: models.Coordinate{Lat: 33.8938, Lon: 35.5018},
			Routes:   []string{"M1"},
		},
	}
}

func testPOIs() []models.POI {
	return []models.POI{
		{
			ID:       "poi_museum_01",
			Name:     "National Museum of Beirut",
			Category: "museum",
			Location: models.Coordinate{Lat: 33.8785, Lon: 35.5150},
			Rating:   4.7,
		},
		{
			ID:       "poi_cafe_01",
			Name:     "Cafe Younes",
			Category: "cafe",
			Location: models.Coordinate{Lat: 33.8942, Lon: 35.4810},
			Rating:   4.5,
		},
		{
			ID:       "poi_cafe_02",
			Name:     "Sip Beirut",
			Category: "cafe",
			Location: models.Coordinate{Lat: 33.8950, Lon: 35.4900},
			Rating:   3.4,
		},
	}
}
