package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics records per-request counters and latency histograms. The
// route template (e.g. /api/v1/answers/:answerID) is used as the path
// label to keep cardinality bounded; unmatched routes collapse into a
// single bucket.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		m.HTTPActiveRequests.WithLabelValues(method).Inc()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPActiveRequests.WithLabelValues(method).Dec()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		if size := c.Request.ContentLength; size > 0 {
			m.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
