package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Validation   *prometheus.CounterVec
	Refresh      *prometheus.CounterVec
	SignalErrors *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Validation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "polyclass",
				Name:      "validation_total",
			}, []string{"outcome"}),
		Refresh: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "polyclass",
				Name:      "refresh_total",
			}, []string{"learner", "outcome"}),
		SignalErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "polyclass",
				Name:      "signal_errors_total",
			}, []string{"input"}),
	}
}
