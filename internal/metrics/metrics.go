// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はHTTPリクエストのPrometheusメトリクスを収集する。
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitodo_http_requests_total",
			Help: "HTTPリクエストの合計数",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gitodo_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
	)

	return c
}

// RecordRequest はHTTPリクエストの完了を記録する。
// pathにはルートパターン（例: /api/todos/{id}）を渡し、生のURLは渡さない。
func (c *Collector) RecordRequest(method, path string, statusCode int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
