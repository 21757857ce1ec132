package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := NewDomainMetrics(reg)
	d.IncLogin("success")
	d.IncLogin("invalid_credentials")
	d.IncLogin("invalid_credentials")
	d.IncOrderEvent("confirmed")
	d.IncOrderEvent("")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	metric, err := findMetric(mfs, "orderdesk_logins_total", map[string]string{"outcome": "invalid_credentials"})
	require.NoError(t, err)
	assert.Equal(t, float64(2), metric.GetCounter().GetValue())

	metric, err = findMetric(mfs, "orderdesk_order_events_total", map[string]string{"event": "unknown"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), metric.GetCounter().GetValue())
}

func TestDomainMetricsNilSafe(t *testing.T) {
	var d *DomainMetrics
	d.IncLogin("success")
	d.IncOrderEvent("created")
	NewDomainMetrics(nil).IncLogin("success")
}
