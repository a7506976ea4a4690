package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"wayfinder.openmobility.org/internal/middleware"
)

// Routes sets up the HTTP routing configuration for the application and
// returns the final http.Handler.
//
// The /metrics endpoint is served by a cached Prometheus handler so
// frequent scrapes do not re-gather the exposition. The whole router is
// wrapped in rate limiting, Sentry capture and security headers; the
// context cancels the metric cache refresh goroutine on shutdown.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/charging/nearby", app.chargingNearbyHandler)
	router.HandlerFunc(http.MethodGet, "/v1/charging/route", app.chargingRouteHandler)
	router.HandlerFunc(http.MethodGet, "/v1/transit/nearby", app.transitNearbyHandler)
	router.HandlerFunc(http.MethodGet, "/v1/transit/route", app.transitRouteHandler)
	router.HandlerFunc(http.MethodGet, "/v1/pois/nearby", app.poisNearbyHandler)
	router.HandlerFunc(http.MethodGet, "/v1/cost/compare", app.costCompareHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.NewRateLimiter(20, 40).Limit(router)
	handler = middleware.SentryMiddleware(handler)
	return middleware.SecurityHeaders(handler)
}
