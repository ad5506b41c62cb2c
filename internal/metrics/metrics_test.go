package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestSetupMetricsRoute_ReturnsHandler はメトリクスルートのハンドラーが正常に返ることを検証する。
func TestSetupMetricsRoute_ReturnsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewCollector(reg)

	handler := SetupMetricsRoute(reg)
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}
}

// TestSetupMetricsRoute_ServesMetrics は/metricsパスでメトリクスが返ることを検証する。
func TestSetupMetricsRoute_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTopicCreated()
	c.RecordHTTPStatus(http.StatusCreated)

	handler := SetupMetricsRoute(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	if !strings.Contains(bodyStr, "topicman_topics_created_total") {
		t.Error("response should contain topicman_topics_created_total metric")
	}
	if !strings.Contains(bodyStr, `topicman_http_status_total{status_code="201"}`) {
		t.Error("response should contain topicman_http_status_total for 201")
	}
}

// TestCollector_RecordCounters は各カウンターの記録がパニックしないことを検証する。
func TestCollector_RecordCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTopicCreated()
	c.RecordTopicUpdated()
	c.RecordTopicDeleted()
	c.RecordHTTPStatus(http.StatusOK)
	c.RecordRequestDuration(http.MethodGet, "/topics", 0)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	if len(families) == 0 {
		t.Error("メトリクスが1つも登録されていない")
	}
}
