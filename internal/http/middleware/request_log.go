package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if reqID := c.GetString("request_id"); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		if traceID := c.GetString("trace_id"); traceID != "" {
			fields = append(fields, "trace_id", traceID)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
