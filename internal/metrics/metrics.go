// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// アクセスサービス層から利用する。
type MetricsCollector interface {
	RecordAccessOutcome(outcome string)
	RecordResolveLatency(duration time.Duration)
	RecordAuditWriteFailure()
	RecordLinkIssued()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	accessOutcome  *prometheus.CounterVec
	resolveLatency prometheus.Histogram
	auditFailure   prometheus.Counter
	linksIssued    prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		accessOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkpass_access_total",
			Help: "署名付きURLアクセスの判定結果別の合計数",
		}, []string{"outcome"}),
		resolveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linkpass_resolve_latency_seconds",
			Help:    "トークン判定処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		auditFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkpass_audit_write_failure_total",
			Help: "監査ログ書き込み失敗の合計数",
		}),
		linksIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkpass_links_issued_total",
			Help: "発行された署名付きURLの合計数",
		}),
	}

	reg.MustRegister(
		c.accessOutcome,
		c.resolveLatency,
		c.auditFailure,
		c.linksIssued,
	)

	return c
}

// RecordAccessOutcome はアクセス判定結果を記録する。
func (c *Collector) RecordAccessOutcome(outcome string) {
	c.accessOutcome.WithLabelValues(outcome).Inc()
}

// RecordResolveLatency はトークン判定処理のレイテンシを記録する。
func (c *Collector) RecordResolveLatency(duration time.Duration) {
	c.resolveLatency.Observe(duration.Seconds())
}

// RecordAuditWriteFailure は監査ログ書き込み失敗を記録する。
func (c *Collector) RecordAuditWriteFailure() {
	c.auditFailure.Inc()
}

// RecordLinkIssued は署名付きURLの発行を記録する。
func (c *Collector) RecordLinkIssued() {
	c.linksIssued.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)

// Noop は何も記録しないMetricsCollector実装。
// メトリクスが不要なテストやワーカーモードで使用する。
type Noop struct{}

func (Noop) RecordAccessOutcome(string)         {}
func (Noop) RecordResolveLatency(time.Duration) {}
func (Noop) RecordAuditWriteFailure()           {}
func (Noop) RecordLinkIssued()                  {}

var _ MetricsCollector = Noop{}
