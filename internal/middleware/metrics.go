package middleware

import (
	"strconv"
	"time"

	"taskhub_backend/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware собирает prometheus-метрики HTTP запросов.
// Путь берется из шаблона маршрута, чтобы не раздувать кардинальность
// метрик значениями параметров.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		statusStr := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(duration)
	}
}
