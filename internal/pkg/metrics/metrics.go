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

	// スケジュールされたセッションの総数
	SessionsScheduledTotal prometheus.Counter

	// 予約試行の総数（status: success, validation_failed, sold_out, lock_failed, error）
	ReservationsTotal *prometheus.CounterVec

	// 予約されたチケット枚数の総数
	TicketsReservedTotal prometheus.Counter

	// 分散ロックの操作時間（operation: acquire/release, status: success/failed）
	DistributedLockDuration *prometheus.HistogramVec

	// プロモーション対象になっているセッション数（直近のスキャン結果）
	PromotionMatchedSessions prometheus.Gauge
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
		SessionsScheduledTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_scheduled_total",
				Help: "Total number of show sessions scheduled",
			},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of ticket reservation attempts",
			},
			[]string{"status"},
		),
		TicketsReservedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tickets_reserved_total",
				Help: "Total number of tickets reserved",
			},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "Time spent on distributed lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		PromotionMatchedSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "promotion_matched_sessions",
				Help: "Number of sessions matched to at least one promotion in the latest scan",
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SessionsScheduledTotal,
		m.ReservationsTotal,
		m.TicketsReservedTotal,
		m.DistributedLockDuration,
		m.PromotionMatchedSessions,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
