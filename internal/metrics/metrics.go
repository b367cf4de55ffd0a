package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.collectors()...)
}

type Metrics struct {
	prometheus Prometheus
}

// IncrementForecasts counts a forecast run with the given outcome.
func (m *Metrics) IncrementForecasts(outcome string) {
	m.prometheus.Forecasts.WithLabelValues(outcome).Inc()
}

// IncrementFailures counts a model family excluded from a run.
func (m *Metrics) IncrementFailures(family string) {
	m.prometheus.FamilyFailures.WithLabelValues(family).Inc()
}

// ObserveTraining records the time spent on a model family.
func (m *Metrics) ObserveTraining(family string, d time.Duration) {
	m.prometheus.FamilyTraining.WithLabelValues(family).Observe(d.Seconds())
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
