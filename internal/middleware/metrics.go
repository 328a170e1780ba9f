package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classwise/timetabler/internal/metrics"
)

// Metrics returns middleware that captures request metrics using the provided collector.
func Metrics(metricsSvc *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
