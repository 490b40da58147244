package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.SessionsScheduledTotal)
	assert.NotNil(t, m.ReservationsTotal)
	assert.NotNil(t, m.TicketsReservedTotal)
	assert.NotNil(t, m.DistributedLockDuration)
	assert.NotNil(t, m.PromotionMatchedSessions)
}

func TestHTTPRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/shows", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/sessions/:id/reserve", "201").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/sessions/:id/reserve", "422").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "http_requests_total metric not found")
}

func TestReservationsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ReservationsTotal.WithLabelValues("success").Inc()
	m.ReservationsTotal.WithLabelValues("success").Inc()
	m.ReservationsTotal.WithLabelValues("validation_failed").Inc()
	m.ReservationsTotal.WithLabelValues("sold_out").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("sold_out")))
}

func TestSchedulingCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.SessionsScheduledTotal.Add(8)
	m.TicketsReservedTotal.Add(3)

	assert.Equal(t, float64(8), testutil.ToFloat64(m.SessionsScheduledTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.TicketsReservedTotal))
}

func TestPromotionMatchedSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.PromotionMatchedSessions.Set(12)
	assert.Equal(t, float64(12), testutil.ToFloat64(m.PromotionMatchedSessions))

	// スキャンごとに上書きされる
	m.PromotionMatchedSessions.Set(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.PromotionMatchedSessions))
}

func TestDistributedLockDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.DistributedLockDuration.WithLabelValues("acquire", "success").Observe(0.015)
	m.DistributedLockDuration.WithLabelValues("release", "success").Observe(0.002)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "distributed_lock_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found, "distributed_lock_duration_seconds metric not found")
}

func TestInitAndGet(t *testing.T) {
	// 既存のdefaultMetricsをバックアップ
	oldMetrics := defaultMetrics
	defer func() { defaultMetrics = oldMetrics }()

	// Initを呼ぶとデフォルトレジストリに登録してしまうため、テストでは直接セット
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	defaultMetrics = m

	got := Get()
	require.NotNil(t, got)
	assert.Equal(t, m, got)
}
