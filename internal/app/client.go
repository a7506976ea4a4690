package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"wayfinder.openmobility.org/internal/metrics"
)

// latencyTrackingRoundTripper wraps another RoundTripper to record the
// latency of each outgoing HTTP request under metrics.OutgoingLatency,
// labeled by URL, method and response status. Wrapping the transport
// keeps the instrumentation out of every call site.
type latencyTrackingRoundTripper struct {
	next http.RoundTripper
}

func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// Normalized URL label without query params, to keep cardinality down.
	safeURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	metrics.OutgoingLatency.WithLabelValues(
		safeURL,
		req.Method,
		status,
	).Observe(duration)

	return resp, err
}

// NewPooledClient returns the HTTP client used for dataset and GTFS
// fetches. Connection reuse matters because the refresh routine polls
// the same hosts repeatedly; timeouts are short enough to fail fast on
// an unresponsive host. The transport is instrumented with the latency
// tracking round tripper.
func NewPooledClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	instrumentedTransport := &latencyTrackingRoundTripper{next: transport}

	return &http.Client{
		Transport: instrumentedTransport,
		Timeout:   30 * time.Second,
	}
}
