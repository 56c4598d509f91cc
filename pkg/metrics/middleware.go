package metrics

import (
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var objectIDSegment = regexp.MustCompile(`/[0-9a-fA-F]{24}(/|$)`)

// GinPrometheusMiddleware собирает http_requests_total и http_request_duration_seconds
func GinPrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()

		HttpRequestsInFlight.WithLabelValues(serviceName).Inc()
		defer HttpRequestsInFlight.WithLabelValues(serviceName).Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		path := c.FullPath()
		if path == "" {
			path = normalizePath(c.Request.URL.Path)
		}

		HttpRequestsTotal.WithLabelValues(serviceName, c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(serviceName, c.Request.Method, path).Observe(duration)
	}
}

// normalizePath заменяет 24-символьные идентификаторы на плейсхолдер,
// чтобы не раздувать кардинальность меток для незарегистрированных маршрутов
func normalizePath(path string) string {
	for objectIDSegment.MatchString(path) {
		path = objectIDSegment.ReplaceAllString(path, "/:id$1")
	}

	if len(path) > 100 {
		path = path[:100]
	}

	return path
}
