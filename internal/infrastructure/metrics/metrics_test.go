package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsAreIndependentPerInstance(t *testing.T) {
	first := NewMetrics()
	second := NewMetrics()

	first.FeedFetchesTotal.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.FeedFetchesTotal.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.FeedFetchesTotal.WithLabelValues("success")))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ConversionsTotal.WithLabelValues("success").Add(3)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `conversions_total{result="success"} 3`)
}
