package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Contadores(t *testing.T) {
	m := New()
	m.CacheRequest("products", "hit")
	m.CacheRequest("products", "hit")
	m.CacheInvalidation("sales")
	m.UpstreamRequest(http.MethodGet, 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("products", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidations.WithLabelValues("sales")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("GET", "200")))
}

func TestMetrics_HandlerExpone(t *testing.T) {
	m := New()
	m.CacheInvalidation("products")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), MetricCacheInvalidationsTotal+`{resource="products"} 1`)
}
