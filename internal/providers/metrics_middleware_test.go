package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &testMetrics{}
	logger := &testLogger{}
	handler := MetricsMiddleware(metrics, logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/entries", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/entries", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, 1, metrics.durationCalls)
	assert.Equal(t, []string{"debug"}, logger.levels)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &testMetrics{}
	handler := MetricsMiddleware(metrics, &testLogger{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNoContent)

	assert.Equal(t, http.StatusNoContent, sw.status)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, rr, sw.Unwrap())
}
