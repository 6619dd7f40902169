package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/courses/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/abc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Requests that match no route share one label value.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	matched, err := requestsTotal.GetMetricWithLabelValues(http.MethodGet, "/courses/:id", "200")
	require.NoError(t, err)
	unmatched, err := requestsTotal.GetMetricWithLabelValues(http.MethodGet, "unmatched", "404")
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, matched))
	assert.Equal(t, 1.0, counterValue(t, unmatched))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, c.Write(&pb))
	return pb.GetCounter().GetValue()
}
