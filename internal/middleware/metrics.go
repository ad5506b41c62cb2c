package middleware

import (
	"net/http"
	"time"
)

// HTTPMetrics はリクエストメトリクスの記録先を表す。
type HTTPMetrics interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(method, path string, duration time.Duration)
}

// NewMetricsMiddleware はレスポンスのステータスコードと処理時間を
// メトリクスとして記録するミドルウェアを返す。
func NewMetricsMiddleware(collector HTTPMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPStatus(rec.statusCode)
			collector.RecordRequestDuration(r.Method, r.URL.Path, time.Since(start))
		})
	}
}
