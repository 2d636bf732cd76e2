package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerRequestID = "X-Request-Id"
	headerTraceID   = "X-Trace-Id"
)

// AttachRequestContext assigns each request an id (honoring an inbound one)
// and echoes trace/request ids back in the response headers.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}

		traceID := ""
		if spanCtx := trace.SpanContextFromContext(c.Request.Context()); spanCtx.HasTraceID() {
			traceID = spanCtx.TraceID().String()
		}

		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerRequestID, reqID)
		if traceID != "" {
			c.Set("trace_id", traceID)
			c.Writer.Header().Set(headerTraceID, traceID)
		}
		c.Next()
	}
}
