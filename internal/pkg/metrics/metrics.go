package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約操作の総数（operation: create/edit/cancel, status: success/conflict/not_found/invalid/error）
	BookingsTotal *prometheus.CounterVec

	// 今日以降の予約済み日数
	UpcomingReservations prometheus.Gauge

	// スナップショットキャッシュのヒット・ミス（result: hit/miss）
	SnapshotCacheLookups *prometheus.CounterVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking operations",
			},
			[]string{"operation", "status"},
		),
		UpcomingReservations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "upcoming_reservations",
				Help: "Number of reserved dates from today onward",
			},
		),
		SnapshotCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_cache_lookups_total",
				Help: "Listing snapshot cache lookups",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.UpcomingReservations,
		m.SnapshotCacheLookups,
	)

	return m
}
