package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitodo/internal/metrics"
)

// NewMetricsMiddleware はリクエストのメトリクスを記録するミドルウェアを返す。
// パスラベルにはchiのルートパターン（例: /api/todos/{id}）を使用し、
// 生のURLによるカーディナリティ爆発を避ける。
func NewMetricsMiddleware(collector *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			collector.RecordRequest(r.Method, path, rec.statusCode, time.Since(start))
		})
	}
}
