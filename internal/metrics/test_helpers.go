package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// GetGaugeValue retrieves the current float64 value of a Prometheus
// GaugeVec metric for the given set of labels. Returns an error if the
// metric cannot be parsed. Exported for use in package tests across the
// module.
func GetGaugeValue(metric *prometheus.GaugeVec, labels map[string]string) (float64, error) {
	c := make(chan prometheus.Metric, 1)
	metric.With(labels).Collect(c)
	m := <-c

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		return 0, err
	}
	if pb.Gauge != nil {
		return pb.Gauge.GetValue(), nil
	}
	return 0, nil
}

// GetCounterValue retrieves the current float64 value of a Prometheus
// CounterVec metric for the given set of labels.
func GetCounterValue(metric *prometheus.CounterVec, labels map[string]string) (float64, error) {
	c := make(chan prometheus.Metric, 1)
	metric.With(labels).Collect(c)
	m := <-c

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		return 0, err
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue(), nil
	}
	return 0, nil
}
