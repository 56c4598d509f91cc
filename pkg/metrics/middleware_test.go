package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"/api/cities", "/api/cities"},
		{"/api/cities/65f1a2b3c4d5e6f708192a3b", "/api/cities/:id"},
		{
			"/api/cities/65f1a2b3c4d5e6f708192a3b/places/65f1a2b3c4d5e6f708192a3c/reviews",
			"/api/cities/:id/places/:id/reviews",
		},
		{"/api/cities/not-an-id", "/api/cities/not-an-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizePath(tc.path))
		})
	}
}

func TestNormalizePath_Truncates(t *testing.T) {
	long := "/" + string(make([]byte, 150))
	assert.Len(t, normalizePath(long), 100)
}

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/api/cities/:city_id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/api/cities/:city_id", "200"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cities/65f1a2b3c4d5e6f708192a3b", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	after := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/api/cities/:city_id", "200"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, 0.0, testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/health", "200")))
}
