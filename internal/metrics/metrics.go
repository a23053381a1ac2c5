package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Validation,
		Observer.prometheus.Refresh,
		Observer.prometheus.SignalErrors,
	)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Validation counts the outcome of a dataset admission.
func (m *Metrics) Validation(outcome string) {
	m.prometheus.Validation.WithLabelValues(outcome).Inc()
}

// Refresh counts a refit and replot for the given learner.
func (m *Metrics) Refresh(learner string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.prometheus.Refresh.WithLabelValues(learner, outcome).Inc()
}

// SignalError counts a signal whose handler failed.
func (m *Metrics) SignalError(input string) {
	m.prometheus.SignalErrors.WithLabelValues(input).Inc()
}

// Collectors returns the underlying collectors, e.g. for testing.
func (m *Metrics) Collectors() Prometheus {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.prometheus
}
