// Package app wires the services together and exposes the HTTP API.
package app

import (
	"log/slog"
	"net/http"

	"wayfinder.openmobility.org/internal/config"
	"wayfinder.openmobility.org/internal/cost"
	"wayfinder.openmobility.org/internal/dataset"
	"wayfinder.openmobility.org/internal/route"
)

// Application holds the service graph and the application version. It is
// initialized once in main() and shared read-only by all handlers.
type Application struct {
	Config         *config.Config
	DatasetService *dataset.Service
	RouteService   *route.RouteService
	CostService    *cost.CostService
	Logger         *slog.Logger
	Version        string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	store := dataset.NewStore()

	datasetService := dataset.NewService(store, logger, client)
	user, pass := cfg.DataAuth()
	datasetService.AuthUser = user
	datasetService.AuthPass = pass

	return &Application{
		Config:         cfg,
		DatasetService: datasetService,
		RouteService:   route.NewRouteService(logger),
		CostService:    cost.NewCostService(),
		Logger:         logger,
		Version:        version,
	}
}
