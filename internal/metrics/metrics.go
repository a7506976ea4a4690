// Package metrics declares the Prometheus instruments exported by the
// service. All instruments are registered on the default registry via
// promauto and scraped through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts API queries by operation (charging_nearby,
	// transit_nearby, pois_nearby, charging_route, transit_route,
	// cost_compare) and result.
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfinder_queries_total",
		Help: "Number of API queries handled, by operation and result",
	}, []string{"operation", "result"})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wayfinder_query_duration_seconds",
		Help:    "Time spent handling an API query",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

var (
	// DatasetRecords reports how many records each dataset collection
	// currently holds (charging_stations, transit_stops, pois).
	DatasetRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wayfinder_dataset_records",
		Help: "Number of records loaded per dataset collection",
	}, []string{"collection"})
)

var (
	ChargingStopsPlanned = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wayfinder_charging_stops_planned",
		Help:    "Charging stops inserted per planned route",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	}, []string{"result"})
)

var (
	// OutgoingLatency tracks the latency of outgoing HTTP requests made
	// by the instrumented dataset client.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wayfinder_outgoing_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)
