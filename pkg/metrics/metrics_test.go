package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewWithRegisterer_IsolatedRegistries(t *testing.T) {
	first := NewWithRegisterer("barber-slots", prometheus.NewRegistry())
	second := NewWithRegisterer("barber-slots", prometheus.NewRegistry())

	first.GranularityCacheHits.Inc()
	first.GranularityCacheHits.Inc()
	second.GranularityCacheMisses.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(first.GranularityCacheHits))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.GranularityCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.GranularityCacheMisses))
}

func TestHTTPRequestsTotal_Labels(t *testing.T) {
	m := NewWithRegisterer("barber-slots", prometheus.NewRegistry())

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/barbershops/{barbershopId}/slots", "200").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/barbershops/{barbershopId}/slots", "200"),
	))
}
