package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceRecords(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/student", 200, 10*time.Millisecond)
	m.ObserveUpstreamCall("login", "success", 5*time.Millisecond)
	m.ObserveUpstreamCall("login", "transport", 5*time.Millisecond)
	m.RecordSessionOperation("save", "ok")

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.Equal(t, uint64(1), snap.UpstreamFailures)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "sifms_api_request_duration_seconds"))
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",path="/student",status="200"} 1`))
	assert.True(t, strings.Contains(body, `session_store_operations_total{operation="save",outcome="ok"} 1`))
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveUpstreamCall("login", "success", time.Millisecond)
	m.RecordSessionOperation("load", "ok")
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
