package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "forsight"

type Prometheus struct {
	Forecasts      *prometheus.CounterVec
	FamilyFailures *prometheus.CounterVec
	FamilyTraining *prometheus.HistogramVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Forecasts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecasts_total",
				Help:      "forecast runs by outcome",
			}, []string{"outcome"}),
		FamilyFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "family_failures_total",
				Help:      "model families excluded from a run",
			}, []string{"family"}),
		FamilyTraining: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "family_train_seconds",
				Help:      "time spent fitting and scoring a model family",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			}, []string{"family"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Forecasts, p.FamilyFailures, p.FamilyTraining}
}
