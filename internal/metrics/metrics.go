// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラー層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(method, path string, duration time.Duration)
	RecordTopicCreated()
	RecordTopicUpdated()
	RecordTopicDeleted()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	topicsCreated   prometheus.Counter
	topicsUpdated   prometheus.Counter
	topicsDeleted   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "topicman_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "topicman_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		topicsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "topicman_topics_created_total",
			Help: "作成されたトピックの合計数",
		}),
		topicsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "topicman_topics_updated_total",
			Help: "更新されたトピックの合計数",
		}),
		topicsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "topicman_topics_deleted_total",
			Help: "削除されたトピックの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.topicsCreated,
		c.topicsUpdated,
		c.topicsDeleted,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(method, path string, duration time.Duration) {
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordTopicCreated はトピック作成を記録する。
func (c *Collector) RecordTopicCreated() {
	c.topicsCreated.Inc()
}

// RecordTopicUpdated はトピック更新を記録する。
func (c *Collector) RecordTopicUpdated() {
	c.topicsUpdated.Inc()
}

// RecordTopicDeleted はトピック削除を記録する。
func (c *Collector) RecordTopicDeleted() {
	c.topicsDeleted.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
