package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	require.NotNil(t, m)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/reservations", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/reservations").Observe(0.05)
	m.BookingsTotal.WithLabelValues("create", "success").Inc()
	m.BookingsTotal.WithLabelValues("create", "conflict").Inc()
	m.UpcomingReservations.Set(3)
	m.SnapshotCacheLookups.WithLabelValues("hit").Inc()

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/reservations", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.BookingsTotal.WithLabelValues("create", "success")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.UpcomingReservations))
}

func TestNewWithRegistry_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)
	assert.Panics(t, func() { NewWithRegistry(reg) })
}
