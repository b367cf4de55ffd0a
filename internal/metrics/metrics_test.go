package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	before := testutil.ToFloat64(Observer.prometheus.Forecasts.WithLabelValues("ok"))
	Observer.IncrementForecasts("ok")
	Observer.IncrementForecasts("ok")
	assert.Equal(t, before+2, testutil.ToFloat64(Observer.prometheus.Forecasts.WithLabelValues("ok")))

	Observer.IncrementFailures("Linear Regression")
	assert.Equal(t, 1.0, testutil.ToFloat64(Observer.prometheus.FamilyFailures.WithLabelValues("Linear Regression")))

	Observer.ObserveTraining("Random Forest", 200*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(Observer.prometheus.FamilyTraining))
}
